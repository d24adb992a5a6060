package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/first-commit/internal/github"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
)

// * CursorStrategy finds the first commit of a user. Implementations return ApplicationErrors
// * whose outermost reference decides the failure reason.
type CursorStrategy interface {
	Name() string
	FirstCommit(ctx context.Context, username string) (*models.CommitRecord, error)
}

// * HistorySource is the upstream surface needed by the offset-rewrite strategy
type HistorySource interface {
	OldestRepository(ctx context.Context, username string) (*github.Repository, error)
	CommitHistory(ctx context.Context, owner, name, after string) (*github.CommitHistoryPage, error)
}

// * SearchSource is the upstream surface needed by the search-based strategy
type SearchSource interface {
	GetUser(ctx context.Context, username string) (*github.User, error)
	SearchOldestCommit(ctx context.Context, username string) (*github.SearchCommit, error)
	GetCommitStats(ctx context.Context, owner, repo, sha string) (*github.CommitStats, error)
}

func noCommits(username, detail string) error {
	return errors.New(
		errors.RefNoCommits,
		"No commits to show",
		fmt.Sprintf("%s: %s", username, detail),
		nil,
		errors.LevelInfo,
	)
}

func malformed(title, detail string) error {
	return errors.New(errors.RefGitHubMalformed, title, detail, nil, errors.LevelError)
}

func validCounts(additions, deletions, changedFiles int) bool {
	return additions >= 0 && deletions >= 0 && changedFiles >= 0
}
