package assessment

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"healthsphere/internal/verification/models"
)

const systemPrompt = `You review medical license documents submitted to the HealthSphere network.
You receive one document image, the license number the applicant typed, the result of a registry lookup for that number, and reviewer instructions.
Judge only what the document shows. Check that the document looks like a genuine license or degree, that it is legible, that the license number printed on it matches the submitted one, and that the name printed on it matches the registry name when one is given.
Return a score from 0 to 100 for how likely the document is genuine and consistent, a short summary of what you checked and any concerns, whether you consider it authentic, and a list of flags drawn only from: forgery, tampering, name_mismatch, license_mismatch, unreadable.`

// BuildPrompt renders the per-request part of the prompt.
func BuildPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Submitted license number: %s\n", in.License)
	if in.Lookup.Registered {
		name := in.Lookup.MatchedName
		if name == "" {
			name = "(no name on record)"
		}
		fmt.Fprintf(&b, "Registry lookup (%s): registered, name on record %s\n", in.Lookup.Registry, name)
	} else {
		fmt.Fprintf(&b, "Registry lookup (%s): not registered\n", in.Lookup.Registry)
	}
	if instructions := strings.TrimSpace(in.Instructions); instructions != "" {
		fmt.Fprintf(&b, "Reviewer instructions: %s\n", instructions)
	}
	b.WriteString("The document follows.")
	return b.String()
}

func flagNames() []string {
	names := make([]string, len(models.KnownFlags))
	for i, f := range models.KnownFlags {
		names[i] = string(f)
	}
	return names
}

// responseSchema constrains the model reply.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score": {
			Type:        genai.TypeInteger,
			Description: "Likelihood the document is genuine and consistent, 0 to 100.",
			Minimum:     genai.Ptr(0.0),
			Maximum:     genai.Ptr(100.0),
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "What was checked and any concerns.",
		},
		"authentic": {
			Type: genai.TypeBoolean,
		},
		"flags": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString, Enum: flagNames()},
		},
	},
	Required: []string{"score", "summary", "authentic", "flags"},
}
