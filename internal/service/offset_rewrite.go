package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/first-commit/internal/config"
	"github.com/KOFI-GYIMAH/first-commit/internal/github"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
)

// * OffsetRewriteStrategy reads the head of the oldest repository's default branch, then jumps
// * straight to the root commit by rewriting the history cursor offset to totalCount-2.
// * Two GraphQL round trips at most, whatever the history length.
type OffsetRewriteStrategy struct {
	source HistorySource
}

func NewOffsetRewriteStrategy(source HistorySource) *OffsetRewriteStrategy {
	return &OffsetRewriteStrategy{source: source}
}

func (s *OffsetRewriteStrategy) Name() string {
	return config.StrategyOffsetRewrite
}

func (s *OffsetRewriteStrategy) FirstCommit(ctx context.Context, username string) (*models.CommitRecord, error) {
	repo, err := s.source.OldestRepository(ctx, username)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, errors.New(
			errors.RefGitHubNotFound,
			"User has no repositories",
			fmt.Sprintf("%s owns no repositories", username),
			nil,
			errors.LevelInfo,
		)
	}

	logger.Debug("Oldest repository of %s is %s/%s", username, repo.Owner, repo.Name)

	head, err := s.source.CommitHistory(ctx, repo.Owner, repo.Name, "")
	if err != nil {
		if errors.ReferenceOf(err) == errors.RefGitHubEmptyRepository {
			return nil, noCommits(username, fmt.Sprintf("%s/%s has no default branch", repo.Owner, repo.Name))
		}
		return nil, err
	}
	if head.TotalCount <= 0 {
		return nil, noCommits(username, fmt.Sprintf("%s/%s has an empty history", repo.Owner, repo.Name))
	}

	page := head
	if head.TotalCount > 1 {
		cursor, err := oldestCursor(head)
		if err != nil {
			return nil, err
		}

		logger.Debug("Jumping to %s of %s/%s (%d commits)", cursor, repo.Owner, repo.Name, head.TotalCount)
		page, err = s.source.CommitHistory(ctx, repo.Owner, repo.Name, cursor.String())
		if err != nil {
			return nil, err
		}
		if err := checkLandedOnRoot(page, head.TotalCount); err != nil {
			return nil, err
		}
	}

	if len(page.Nodes) == 0 || page.Nodes[0] == nil {
		return nil, malformed(
			"Commit history page is empty",
			fmt.Sprintf("%s/%s reported %d commits but returned no node", repo.Owner, repo.Name, head.TotalCount),
		)
	}

	record, err := recordFromHistoryNode(page.Nodes[0])
	if err != nil {
		return nil, err
	}

	record.BranchName = page.BranchName
	if record.BranchName == "" {
		record.BranchName = head.BranchName
	}
	if record.Author != nil && record.Author.AvatarURL == "" {
		record.Author.AvatarURL = repo.OwnerAvatarURL
	}

	return record, nil
}

// * oldestCursor validates the head page cursor and rewrites it so the next node is the root commit
func oldestCursor(head *github.CommitHistoryPage) (HistoryCursor, error) {
	if head.EndCursor == "" {
		return HistoryCursor{}, malformedCursor("", "history page has no end cursor")
	}

	cursor, err := ParseHistoryCursor(head.EndCursor)
	if err != nil {
		return HistoryCursor{}, err
	}

	// * The head page holds one node, so its cursor must point at position 0
	if cursor.Offset != len(head.Nodes)-1 {
		return HistoryCursor{}, malformedCursor(head.EndCursor, fmt.Sprintf("head page offset is %d, expected %d", cursor.Offset, len(head.Nodes)-1))
	}

	return cursor.WithOffset(head.TotalCount - 2), nil
}

func checkLandedOnRoot(page *github.CommitHistoryPage, totalCount int) error {
	if page.EndCursor == "" {
		return nil
	}

	cursor, err := ParseHistoryCursor(page.EndCursor)
	if err != nil {
		return err
	}
	if cursor.Offset != totalCount-1 {
		return malformedCursor(page.EndCursor, fmt.Sprintf("landed on offset %d, expected %d", cursor.Offset, totalCount-1))
	}
	return nil
}

func recordFromHistoryNode(node *github.HistoryNode) (*models.CommitRecord, error) {
	if node.OID == "" {
		return nil, malformed("Commit node without oid", "GitHub returned a history node without an oid")
	}
	if node.Additions == nil || node.Deletions == nil || node.ChangedFilesIfAvailable == nil {
		return nil, malformed(
			"Commit statistics missing from GitHub response",
			fmt.Sprintf("Commit %s came back without additions, deletions or changed files", node.OID),
		)
	}
	if !validCounts(*node.Additions, *node.Deletions, *node.ChangedFilesIfAvailable) {
		return nil, malformed(
			"Negative commit statistics from GitHub",
			fmt.Sprintf("Commit %s reported +%d -%d in %d files", node.OID, *node.Additions, *node.Deletions, *node.ChangedFilesIfAvailable),
		)
	}

	record := &models.CommitRecord{
		ID:           node.OID,
		Message:      node.Message,
		CommittedAt:  node.CommittedDate,
		URL:          node.CommitURL,
		Additions:    *node.Additions,
		Deletions:    *node.Deletions,
		ChangedFiles: *node.ChangedFilesIfAvailable,
	}
	if node.Author != nil {
		record.Author = &models.Author{Name: node.Author.Name, AvatarURL: node.Author.AvatarURL}
	}

	return record, nil
}
