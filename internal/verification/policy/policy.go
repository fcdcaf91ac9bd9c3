// Package policy combines a registry lookup and a document assessment into one
// bounded score. It performs no I/O.
package policy

import (
	"fmt"
	"strings"

	"healthsphere/internal/verification/models"
)

// Bounds is an inclusive score range.
type Bounds struct {
	Min int
	Max int
}

// Score ranges per band.
var (
	UnregisteredBounds = Bounds{Min: 0, Max: 49}
	SuspectBounds      = Bounds{Min: 50, Max: 70}
	VerifiedBounds     = Bounds{Min: 90, Max: 100}
)

// BoundsFor returns the score range of band.
func BoundsFor(band models.Band) Bounds {
	switch band {
	case models.BandUnregistered:
		return UnregisteredBounds
	case models.BandSuspect:
		return SuspectBounds
	default:
		return VerifiedBounds
	}
}

// Classify picks the band. Registry absence outranks anything the document shows.
func Classify(lookup models.LookupResult, assessment models.Assessment) models.Band {
	switch {
	case !lookup.Registered:
		return models.BandUnregistered
	case assessment.Flagged():
		return models.BandSuspect
	default:
		return models.BandVerified
	}
}

// Evaluate bands the assessment score and writes a summary naming both checks.
func Evaluate(lookup models.LookupResult, assessment models.Assessment) models.Outcome {
	band := Classify(lookup, assessment)
	return models.Outcome{
		Score:    clamp(assessment.Score, BoundsFor(band)),
		Summary:  summarize(band, lookup, assessment),
		Band:     band,
		Registry: lookup,
	}
}

// clamp keeps score inside b; a zero (missing) score becomes the floor.
func clamp(score int, b Bounds) int {
	if score <= 0 {
		return b.Min
	}
	return min(max(score, b.Min), b.Max)
}

func summarize(band models.Band, lookup models.LookupResult, assessment models.Assessment) string {
	registry := lookup.Registry
	if registry == "" {
		registry = "PMDC"
	}

	var b strings.Builder
	if lookup.Registered {
		b.WriteString("Registry check: passed. ")
		if lookup.MatchedName != "" {
			fmt.Fprintf(&b, "License %s matched %s in the %s registry. ", lookup.LicenseNumber, lookup.MatchedName, registry)
		} else {
			fmt.Fprintf(&b, "License %s was found in the %s registry. ", lookup.LicenseNumber, registry)
		}
	} else {
		fmt.Fprintf(&b, "Registry check: failed. License %s was not found in the %s registry. ", lookup.LicenseNumber, registry)
	}

	if assessment.Flagged() {
		b.WriteString("Document check: failed")
		if len(assessment.Flags) > 0 {
			flags := make([]string, len(assessment.Flags))
			for i, f := range assessment.Flags {
				flags[i] = strings.ReplaceAll(string(f), "_", " ")
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(flags, ", "))
		}
		b.WriteString(".")
	} else {
		b.WriteString("Document check: passed.")
	}
	if detail := strings.TrimSpace(assessment.Summary); detail != "" {
		b.WriteString(" ")
		b.WriteString(detail)
	}
	if band == models.BandUnregistered {
		b.WriteString(" The license must be registered before the profile can be verified.")
	}
	return b.String()
}
