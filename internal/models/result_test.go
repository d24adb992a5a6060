package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureSerializesNullCommit(t *testing.T) {
	b, err := json.Marshal(Failure(ReasonNotFound))
	require.NoError(t, err)
	assert.JSONEq(t, `{"commit":null,"reason":"NOT_FOUND","message":"User not found"}`, string(b))
}

func TestSuccessSerializesCommitShape(t *testing.T) {
	res := Success(&CommitRecord{
		ID:           "abc123",
		Message:      "Initial commit",
		CommittedAt:  time.Date(2011, 1, 26, 19, 6, 8, 0, time.UTC),
		URL:          "https://github.com/octocat/Spoon-Knife/commit/abc123",
		Additions:    3,
		ChangedFiles: 1,
		Author:       &Author{Name: "The Octocat", AvatarURL: "https://avatars.example/octocat"},
		BranchName:   "main",
	})

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	commit := raw["commit"]
	assert.Equal(t, "abc123", commit["id"])
	assert.Equal(t, float64(0), commit["deletions"])
	assert.Equal(t, "main", commit["branchName"])
	assert.Equal(t, "2011-01-26T19:06:08Z", commit["committedAt"])
	assert.NotContains(t, string(b), `"message":"User`)
	assert.True(t, res.OK())
	assert.Equal(t, OutcomeSuccess, res.Outcome())
}

func TestUnknownReasonFallsBackToUpstreamMessage(t *testing.T) {
	assert.Equal(t, ReasonUpstreamError.Message(), FailureReason("SOMETHING").Message())
	assert.Equal(t, "no commits to show", Failure(ReasonNoCommits).Message)
}

func TestNewLookup(t *testing.T) {
	l := NewLookup("octocat", "offset-rewrite", Success(&CommitRecord{ID: "abc"}), 1500*time.Millisecond)
	assert.Equal(t, "abc", l.CommitSHA)
	assert.Equal(t, int64(1500), l.DurationMS)
	assert.Equal(t, OutcomeSuccess, l.Outcome)

	l = NewLookup("ghost", "search-based", Failure(ReasonNoCommits), 0)
	assert.Empty(t, l.CommitSHA)
	assert.Equal(t, "NO_COMMITS", l.Outcome)
}

func TestNewLookup_NormalizesUsername(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "octocat", "octocat"},
		{"padded", "  octocat\t", "octocat"},
		{"blank", "   ", ""},
		{"too long", strings.Repeat("x", 60), strings.Repeat("x", MaxUsernameLength)},
		{"multibyte", strings.Repeat("ö", 50), strings.Repeat("ö", MaxUsernameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := NewLookup(tt.raw, "offset-rewrite", Failure(ReasonNotFound), time.Millisecond)
			assert.Equal(t, tt.want, lookup.Username)
		})
	}
}
