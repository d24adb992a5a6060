package queue

import (
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMessageRoundTrip(t *testing.T) {
	lookup := models.Lookup{
		ID:         uuid.New(),
		Username:   "octocat",
		Strategy:   "search-based",
		Outcome:    "SUCCESS",
		CommitSHA:  "7fd1a60b01f91b314f59955a4e4d4e80d8edf11d",
		DurationMS: 812,
		ResolvedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	body, err := encodeLookup(lookup)
	require.NoError(t, err)

	decoded, err := decodeLookup(body)
	require.NoError(t, err)
	assert.Equal(t, lookup, decoded)
}

func TestDecodeLookup_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "sync owner/repo"},
		{"missing username", `{"id":"0f8fad5b-d9cb-469f-a165-70867728950e","outcome":"SUCCESS"}`},
		{"missing outcome", `{"id":"0f8fad5b-d9cb-469f-a165-70867728950e","username":"octocat"}`},
		{"bad id", `{"id":"nope","username":"octocat","outcome":"SUCCESS"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeLookup([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
