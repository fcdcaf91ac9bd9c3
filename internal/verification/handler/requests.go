package handler

import (
	"healthsphere/internal/verification/models"
	"healthsphere/pkg/datauri"
	s "healthsphere/pkg/string"
	"healthsphere/pkg/validation"
)

// VerifyRequest is the JSON body of POST /verifications.
type VerifyRequest struct {
	DocumentDataURI   string `json:"document_data_uri" validate:"required"`
	LicenseNumber     string `json:"license_number"`
	AdminInstructions string `json:"admin_instructions"`
}

func (r *VerifyRequest) Normalize() {
	s.TrimStrings(&r.DocumentDataURI, &r.LicenseNumber, &r.AdminInstructions)
}

// Validate only checks transport shape. Content rules live in the service so
// both entry points share them.
func (r *VerifyRequest) Validate() error {
	return validation.Validate(r)
}

// ToModel decodes the data URI into a verification request.
func (r *VerifyRequest) ToModel() (models.Request, error) {
	doc, err := datauri.Parse(r.DocumentDataURI)
	if err != nil {
		return models.Request{}, err
	}
	return models.Request{
		Document:          models.Document{Data: doc.Data, MIMEType: doc.MIMEType},
		LicenseNumber:     r.LicenseNumber,
		AdminInstructions: r.AdminInstructions,
	}, nil
}
