package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
)

const historyQuery = `query($owner: String!, $name: String!, $after: String) {
  repository(owner: $owner, name: $name) {
    defaultBranchRef {
      name
      target {
        ... on Commit {
          history(first: 1, after: $after) {
            nodes {
              oid
              message
              committedDate
              commitUrl
              additions
              deletions
              changedFilesIfAvailable
              author {
                name
                avatarUrl
              }
            }
            totalCount
            pageInfo {
              endCursor
            }
          }
        }
      }
    }
  }
}`

// * CommitHistory fetches one node of the default branch history starting after the given cursor.
// * An empty cursor starts from the most recent commit.
func (c *Client) CommitHistory(ctx context.Context, owner, name, after string) (*CommitHistoryPage, error) {
	variables := map[string]any{
		"owner": owner,
		"name":  name,
		"after": nil,
	}
	if after != "" {
		variables["after"] = after
	}

	payload, err := json.Marshal(graphQLRequest{Query: historyQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	resp, err := c.makeRequest(ctx, http.MethodPost, "/graphql", bytes.NewReader(payload))
	if err != nil {
		if errors.HasReference(err, errors.RefGitHubRateLimited) {
			return nil, err
		}
		return nil, errors.New(
			errors.RefGitHubAPIError,
			"Failed to fetch commit history from GitHub",
			fmt.Sprintf("Could not connect to GitHub GraphQL API for %s/%s", owner, name),
			err,
			errors.LevelError,
		)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return nil, errors.New(
			errors.RefGitHubRateLimited,
			"GitHub rate limit exceeded",
			fmt.Sprintf("GraphQL API refused the history query for %s/%s", owner, name),
			nil,
			errors.LevelWarning,
		)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(
			errors.RefGitHubAPIError,
			"Unexpected response from GitHub API",
			fmt.Sprintf("GitHub GraphQL API returned status %d for %s/%s", resp.StatusCode, owner, name),
			nil,
			errors.LevelError,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubAPIError,
			"Failed to read GitHub API response",
			"Could not read the response body from GitHub GraphQL API",
			err,
			errors.LevelError,
		)
	}

	var parsed historyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New(
			errors.RefGitHubMalformed,
			"Failed to parse GitHub API response",
			"Could not understand the commit history returned by GitHub",
			err,
			errors.LevelError,
		)
	}

	if len(parsed.Errors) > 0 {
		return nil, graphQLFailure(parsed.Errors, owner, name)
	}

	if parsed.Data == nil {
		return nil, malformedHistory(owner, name, "data")
	}
	repo := parsed.Data.Repository
	if repo == nil {
		return nil, errors.New(
			errors.RefGitHubNotFound,
			"Repository not found on GitHub",
			fmt.Sprintf("The repository %s/%s does not exist or you don't have access to it", owner, name),
			nil,
			errors.LevelInfo,
		)
	}
	if repo.DefaultBranchRef == nil {
		return nil, errors.New(
			errors.RefGitHubEmptyRepository,
			"Repository has no default branch",
			fmt.Sprintf("The repository %s/%s is empty", owner, name),
			nil,
			errors.LevelInfo,
		)
	}
	if repo.DefaultBranchRef.Target == nil || repo.DefaultBranchRef.Target.History == nil {
		return nil, malformedHistory(owner, name, "defaultBranchRef.target.history")
	}

	history := repo.DefaultBranchRef.Target.History
	page := &CommitHistoryPage{
		BranchName: repo.DefaultBranchRef.Name,
		Nodes:      history.Nodes,
		TotalCount: history.TotalCount,
	}
	if history.PageInfo.EndCursor != nil {
		page.EndCursor = *history.PageInfo.EndCursor
	}

	return page, nil
}

func graphQLFailure(errs []graphQLError, owner, name string) error {
	for _, e := range errs {
		switch e.Type {
		case "NOT_FOUND":
			return errors.New(errors.RefGitHubNotFound, "Repository not found on GitHub", e.Message, nil, errors.LevelInfo)
		case "RATE_LIMITED":
			return errors.New(errors.RefGitHubRateLimited, "GitHub rate limit exceeded", e.Message, nil, errors.LevelWarning)
		}
	}
	return errors.New(
		errors.RefGitHubAPIError,
		"GitHub GraphQL query failed",
		fmt.Sprintf("History query for %s/%s failed: %s", owner, name, errs[0].Message),
		nil,
		errors.LevelError,
	)
}

func malformedHistory(owner, name, field string) error {
	return errors.New(
		errors.RefGitHubMalformed,
		"Unexpected commit history payload from GitHub",
		fmt.Sprintf("Field %s is missing for %s/%s", field, owner, name),
		nil,
		errors.LevelError,
	)
}
