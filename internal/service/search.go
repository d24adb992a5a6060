package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/first-commit/internal/config"
	"github.com/KOFI-GYIMAH/first-commit/internal/github"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// * SearchStrategy asks the commit search API for the user's oldest authored commit, then
// * fetches its diff statistics, which search results do not carry.
type SearchStrategy struct {
	source SearchSource
}

func NewSearchStrategy(source SearchSource) *SearchStrategy {
	return &SearchStrategy{source: source}
}

func (s *SearchStrategy) Name() string {
	return config.StrategySearchBased
}

func (s *SearchStrategy) FirstCommit(ctx context.Context, username string) (*models.CommitRecord, error) {
	var (
		user      *github.User
		userErr   error
		oldest    *github.SearchCommit
		searchErr error
	)

	// * Both lookups always run to completion; each records its own outcome
	var g errgroup.Group
	g.Go(func() error {
		defer recoverLookup(&userErr, "user lookup")
		user, userErr = s.source.GetUser(ctx, username)
		return nil
	})
	g.Go(func() error {
		defer recoverLookup(&searchErr, "commit search")
		oldest, searchErr = s.source.SearchOldestCommit(ctx, username)
		return nil
	})
	_ = g.Wait()

	if userErr != nil {
		if errors.ReferenceOf(userErr) == errors.RefGitHubNotFound {
			return nil, userErr
		}
		return nil, errors.New(
			errors.RefGitHubAPIError,
			"Failed to look up user",
			fmt.Sprintf("Profile lookup for %s failed", username),
			userErr,
			errors.LevelError,
		)
	}
	if user == nil {
		return nil, malformed("Empty user profile", fmt.Sprintf("Profile lookup for %s returned nothing", username))
	}

	if searchErr != nil {
		return nil, errors.New(
			errors.RefGitHubAPIError,
			"Failed to search commits",
			fmt.Sprintf("Commit search for %s failed", username),
			searchErr,
			errors.LevelError,
		)
	}
	if oldest == nil {
		return nil, noCommits(username, "commit search returned no items")
	}

	stats, err := s.source.GetCommitStats(ctx, oldest.RepositoryOwner, oldest.RepositoryName, oldest.SHA)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubAPIError,
			"Failed to fetch commit statistics",
			fmt.Sprintf("Statistics for %s/%s@%s are unavailable", oldest.RepositoryOwner, oldest.RepositoryName, oldest.SHA),
			err,
			errors.LevelError,
		)
	}
	if stats == nil || !validCounts(stats.Additions, stats.Deletions, stats.ChangedFiles) {
		return nil, malformed(
			"Invalid commit statistics from GitHub",
			fmt.Sprintf("Statistics for %s are missing or negative", oldest.SHA),
		)
	}

	return &models.CommitRecord{
		ID:           oldest.SHA,
		Message:      oldest.Message,
		CommittedAt:  oldest.CommittedAt,
		URL:          oldest.HTMLURL,
		Additions:    stats.Additions,
		Deletions:    stats.Deletions,
		ChangedFiles: stats.ChangedFiles,
		Author:       mergeAuthor(user, oldest),
	}, nil
}

// * mergeAuthor prefers the current profile over the snapshot embedded in the commit
func mergeAuthor(user *github.User, commit *github.SearchCommit) *models.Author {
	author := &models.Author{Name: commit.AuthorName, AvatarURL: commit.AuthorAvatarURL}

	switch {
	case user.Name != "":
		author.Name = user.Name
	case author.Name == "":
		author.Name = user.Login
	}
	if user.AvatarURL != "" {
		author.AvatarURL = user.AvatarURL
	}

	return author
}

// * recoverLookup turns a panic in a concurrent lookup into that lookup's error
func recoverLookup(dst *error, step string) {
	if p := recover(); p != nil {
		*dst = errors.New(
			errors.RefGitHubAPIError,
			"Panic during "+step,
			fmt.Sprintf("%v", p),
			nil,
			errors.LevelError,
		)
	}
}
