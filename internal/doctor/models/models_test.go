package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultInstructions(t *testing.T) {
	got := DefaultInstructions("Ayesha Khan", "Cardiology", "PMC-12345")
	assert.Equal(t, "Verify the medical license for Dr. Ayesha Khan, specializing in Cardiology. License number provided: PMC-12345.", got)
}

func TestStatusAwaitingReview(t *testing.T) {
	assert.True(t, StatusVerificationFailed.AwaitingReview())
	assert.True(t, StatusPendingReview.AwaitingReview())
	assert.False(t, StatusVerifiedByAI.AwaitingReview())
	assert.False(t, StatusApprovedByAdmin.AwaitingReview())
	assert.False(t, StatusRejectedByAdmin.AwaitingReview())
}
