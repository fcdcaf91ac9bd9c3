package handler

import (
	"healthsphere/internal/flows/models"
	"healthsphere/pkg/datauri"
	s "healthsphere/pkg/string"
	"healthsphere/pkg/validation"
)

type SkinAnalysisRequest struct {
	PhotoDataURI string `json:"photo_data_uri" validate:"required"`
	Description  string `json:"description" validate:"max=2000"`
}

func (r *SkinAnalysisRequest) Normalize() { s.TrimStrings(&r.PhotoDataURI, &r.Description) }
func (r *SkinAnalysisRequest) Validate() error { return validation.Validate(r) }

type MedicineCheckRequest struct {
	PhotoDataURI string `json:"photo_data_uri" validate:"required"`
}

func (r *MedicineCheckRequest) Normalize() { s.TrimStrings(&r.PhotoDataURI) }
func (r *MedicineCheckRequest) Validate() error { return validation.Validate(r) }

type FirstAidRequest struct {
	EmergencyDescription string `json:"emergency_description" validate:"required,notblank,max=2000"`
}

func (r *FirstAidRequest) Normalize() { s.TrimStrings(&r.EmergencyDescription) }
func (r *FirstAidRequest) Validate() error { return validation.Validate(r) }

type LabReportRequest struct {
	LabReportDataURI string `json:"lab_report_data_uri" validate:"required"`
}

func (r *LabReportRequest) Normalize() { s.TrimStrings(&r.LabReportDataURI) }
func (r *LabReportRequest) Validate() error { return validation.Validate(r) }

// ChatRequest is shared by the psychologist and login assistant routes.
// Message rules are enforced by the service.
type ChatRequest struct {
	ChatHistory []models.ChatMessage `json:"chat_history" validate:"required"`
}

func (r *ChatRequest) Validate() error { return validation.Validate(r) }

func decodeMedia(raw string) (models.Media, error) {
	u, err := datauri.Parse(raw)
	if err != nil {
		return models.Media{}, err
	}
	return models.Media{Data: u.Data, MIMEType: u.MIMEType}, nil
}
