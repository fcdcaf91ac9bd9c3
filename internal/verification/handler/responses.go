package handler

import "healthsphere/internal/verification/models"

// RegistryResponse is the registry part of an outcome.
type RegistryResponse struct {
	Registered  bool   `json:"registered"`
	MatchedName string `json:"matched_name,omitempty"`
	Registry    string `json:"registry"`
}

// OutcomeResponse is returned by both verification endpoints.
// PassedThreshold is informational; this endpoint never rejects.
type OutcomeResponse struct {
	Score           int              `json:"score"`
	Summary         string           `json:"summary"`
	Band            string           `json:"band"`
	Registry        RegistryResponse `json:"registry"`
	PassedThreshold bool             `json:"passed_threshold"`
}

func toOutcomeResponse(o *models.Outcome, threshold int) *OutcomeResponse {
	return &OutcomeResponse{
		Score:   o.Score,
		Summary: o.Summary,
		Band:    string(o.Band),
		Registry: RegistryResponse{
			Registered:  o.Registry.Registered,
			MatchedName: o.Registry.MatchedName,
			Registry:    o.Registry.Registry,
		},
		PassedThreshold: o.Score >= threshold,
	}
}
