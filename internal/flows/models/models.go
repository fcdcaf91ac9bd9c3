// Package models holds the inputs and replies of the assistant flows.
package models

// Media is an inline image or document handed to the model.
type Media struct {
	Data     []byte
	MIMEType string
}

// Chat roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SkinAnalysisInput struct {
	Photo       Media
	Description string
}

type SkinAnalysis struct {
	Condition string `json:"condition"`
	// Confidence is clamped to [0,1].
	Confidence float64 `json:"confidence"`
	Advice     string  `json:"advice"`
}

type MedicineIdentification struct {
	IsMedicine  bool    `json:"is_medicine"`
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

type MedicineCheck struct {
	Identification MedicineIdentification `json:"identification"`
}

type FirstAid struct {
	Instructions string `json:"instructions"`
}

type LabReportSummary struct {
	Summary string `json:"summary"`
}

type ChatReply struct {
	Response string `json:"response"`
}
