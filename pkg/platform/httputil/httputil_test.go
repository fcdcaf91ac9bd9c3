package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "healthsphere/pkg/domain-errors"
)

func TestWriteError_VerificationCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", dErrors.New(dErrors.CodeValidation, "document image is required"), http.StatusBadRequest, "validation_error"},
		{"lookup unavailable", dErrors.New(dErrors.CodeLookupUnavailable, "registry unavailable"), http.StatusServiceUnavailable, "registry_unavailable"},
		{"assessment failed", dErrors.New(dErrors.CodeAssessmentFailed, "assessment failed"), http.StatusBadGateway, "assessment_failed"},
		{"model error", dErrors.New(dErrors.CodeUpstreamModel, "model call failed"), http.StatusBadGateway, "upstream_model_error"},
		{"rejected", dErrors.New(dErrors.CodeVerificationRejected, "score below threshold"), http.StatusUnprocessableEntity, "verification_failed"},
		{"conflict", dErrors.New(dErrors.CodeConflict, "email already registered"), http.StatusConflict, "conflict"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestWriteError_OmitsEmptyDescription(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, &dErrors.Error{Code: dErrors.CodeNotFound})

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, ok := body["error_description"]
	assert.False(t, ok)
}
