package verification

// ContractVersion identifies the schema for verification outcomes shared across modules.
const ContractVersion = "v0.1.0"

// Band is the score band a verification outcome falls into.
type Band string

const (
	BandUnregistered Band = "unregistered"
	BandSuspect      Band = "suspect"
	BandVerified     Band = "verified"
)

// Document is the submitted license document image.
type Document struct {
	Data     []byte
	MIMEType string
}

// Request carries what a caller submits for a license verification.
type Request struct {
	Document          Document
	LicenseNumber     string
	AdminInstructions string
}

// Outcome is the bounded score and summary returned for one verification.
// Callers decide acceptance; the outcome itself never rejects.
type Outcome struct {
	Score        int    `json:"score"`
	Summary      string `json:"summary"`
	Band         Band   `json:"band"`
	Registered   bool   `json:"registered"`
	MatchedName  string `json:"matched_name,omitempty"`
	RegistryName string `json:"registry"`
}
