package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationError_Error(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := New(RefGitHubAPIError, "Failed to reach GitHub", "GET /users/octocat", cause, LevelError)

	msg := err.Error()
	assert.Contains(t, msg, "[GITHUB_API_ERROR] Failed to reach GitHub")
	assert.Contains(t, msg, "GET /users/octocat")
	assert.Contains(t, msg, "caused by: connection refused")
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.CallerTrace)
}

func TestReferenceHelpers(t *testing.T) {
	inner := New(RefGitHubNotFound, "User not found on GitHub", "", nil, LevelInfo)
	outer := New(RefGitHubAPIError, "Failed to list repositories", "", inner, LevelError)
	wrapped := fmt.Errorf("resolving: %w", outer)

	assert.Equal(t, RefGitHubAPIError, ReferenceOf(wrapped))
	assert.True(t, HasReference(wrapped, RefGitHubNotFound))
	assert.True(t, HasReference(wrapped, RefGitHubAPIError))
	assert.False(t, HasReference(wrapped, RefNoCommits))

	assert.Equal(t, "", ReferenceOf(fmt.Errorf("plain")))
	assert.False(t, HasReference(nil, RefNoCommits))
}

func TestWriteHTTPError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedRef    string
	}{
		{
			name:           "error level maps to bad request",
			err:            New(RefGitHubAPIError, "boom", "", nil, LevelError),
			expectedStatus: http.StatusBadRequest,
			expectedRef:    RefGitHubAPIError,
		},
		{
			name:           "fatal level maps to internal error",
			err:            New("DB_CONNECTION_ERROR", "db down", "", nil, LevelFatal),
			expectedStatus: http.StatusInternalServerError,
			expectedRef:    "DB_CONNECTION_ERROR",
		},
		{
			name:           "missing ledger maps to service unavailable",
			err:            New(RefLedgerUnavailable, "Lookup ledger is not configured", "", nil, LevelWarning),
			expectedStatus: http.StatusServiceUnavailable,
			expectedRef:    RefLedgerUnavailable,
		},
		{
			name:           "plain error maps to internal error",
			err:            fmt.Errorf("unexpected"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteHTTPError(rec, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp HTTPErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.Equal(t, tt.expectedRef, resp.ErrorRef)
		})
	}
}
