package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// * One resolution served by the API
type Lookup struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Strategy   string    `json:"strategy"`
	Outcome    string    `json:"outcome"`
	CommitSHA  string    `json:"commit_sha,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type UsernameLookupCount struct {
	Username    string `json:"username"`
	LookupCount int    `json:"lookup_count"`
}

// * Longest GitHub login, and the width of lookups.username
const MaxUsernameLength = 39

// * LedgerUsername trims the requested username and cuts it to the stored column width
func LedgerUsername(raw string) string {
	username := strings.TrimSpace(raw)
	if runes := []rune(username); len(runes) > MaxUsernameLength {
		username = string(runes[:MaxUsernameLength])
	}
	return username
}

func NewLookup(username, strategy string, result ResolutionResult, elapsed time.Duration) Lookup {
	l := Lookup{
		ID:         uuid.New(),
		Username:   LedgerUsername(username),
		Strategy:   strategy,
		Outcome:    result.Outcome(),
		DurationMS: elapsed.Milliseconds(),
		ResolvedAt: time.Now().UTC(),
	}
	if result.Commit != nil {
		l.CommitSHA = result.Commit.ID
	}
	return l
}
