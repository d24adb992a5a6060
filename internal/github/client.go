package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	gh "github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

var (
	baseURL = "https://api.github.com"
)

type Client struct {
	httpClient *http.Client
	rest       *gh.Client
	token      string
	apiURL     string
}

type Option func(*Client)

// * WithBaseURL points the client at another API root, e.g. GitHub Enterprise
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.apiURL = strings.TrimSuffix(u, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func NewClient(token string, opts ...Option) *Client {
	rl := NewRateLimiter()

	var transport http.RoundTripper = rl.Middleware(http.DefaultTransport)
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   transport,
		}
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		token:  token,
		apiURL: strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rest = gh.NewClient(c.httpClient)
	if u, err := url.Parse(c.apiURL + "/"); err == nil {
		c.rest.BaseURL = u
	} else {
		logger.Warn("Invalid GitHub API URL %q, falling back to default: %v", c.apiURL, err)
	}

	return c
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// * OldestRepository returns the user's earliest-created repository, or nil when the user owns none.
// * Ties on creation time keep GitHub's sort order.
func (c *Client) OldestRepository(ctx context.Context, username string) (*Repository, error) {
	repos, _, err := c.rest.Repositories.List(ctx, username, &gh.RepositoryListOptions{
		Type:        "owner",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, wrapRESTError(err,
			"Failed to list repositories from GitHub",
			fmt.Sprintf("Could not list repositories of user %s", username),
		)
	}

	if len(repos) == 0 {
		return nil, nil
	}

	repo := repos[0]
	if repo.GetName() == "" || repo.GetOwner().GetLogin() == "" {
		return nil, errors.New(
			errors.RefGitHubMalformed,
			"Unexpected repository payload from GitHub",
			fmt.Sprintf("Repository listing for %s is missing the name or owner", username),
			nil,
			errors.LevelError,
		)
	}

	return &Repository{
		Name:           repo.GetName(),
		Owner:          repo.GetOwner().GetLogin(),
		OwnerAvatarURL: repo.GetOwner().GetAvatarURL(),
		DefaultBranch:  repo.GetDefaultBranch(),
		CreatedAt:      repo.GetCreatedAt().Time,
	}, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	user, _, err := c.rest.Users.Get(ctx, username)
	if err != nil {
		return nil, wrapRESTError(err,
			"Failed to fetch user from GitHub",
			fmt.Sprintf("Could not retrieve user %s from GitHub API", username),
		)
	}

	if user.GetLogin() == "" {
		return nil, errors.New(
			errors.RefGitHubMalformed,
			"Unexpected user payload from GitHub",
			fmt.Sprintf("User %s came back without a login", username),
			nil,
			errors.LevelError,
		)
	}

	return &User{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

// * SearchOldestCommit returns the oldest commit authored by the user, or nil when the search is empty
func (c *Client) SearchOldestCommit(ctx context.Context, username string) (*SearchCommit, error) {
	result, _, err := c.rest.Search.Commits(ctx, "author:"+username, &gh.SearchOptions{
		Sort:        "committer-date",
		Order:       "asc",
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, wrapRESTError(err,
			"Failed to search commits on GitHub",
			fmt.Sprintf("Could not search commits authored by %s", username),
		)
	}

	if result == nil || len(result.Commits) == 0 {
		return nil, nil
	}

	item := result.Commits[0]
	repo := item.GetRepository()
	if item.GetSHA() == "" || repo.GetName() == "" || repo.GetOwner().GetLogin() == "" {
		return nil, errors.New(
			errors.RefGitHubMalformed,
			"Unexpected commit search payload from GitHub",
			fmt.Sprintf("Commit search item for %s is missing the sha or repository", username),
			nil,
			errors.LevelError,
		)
	}

	committedAt := item.GetCommit().GetCommitter().GetDate().Time
	if committedAt.IsZero() {
		committedAt = item.GetCommit().GetAuthor().GetDate().Time
	}

	return &SearchCommit{
		SHA:             item.GetSHA(),
		Message:         item.GetCommit().GetMessage(),
		HTMLURL:         item.GetHTMLURL(),
		CommittedAt:     committedAt,
		AuthorName:      item.GetCommit().GetAuthor().GetName(),
		AuthorAvatarURL: item.GetAuthor().GetAvatarURL(),
		RepositoryOwner: repo.GetOwner().GetLogin(),
		RepositoryName:  repo.GetName(),
	}, nil
}

// * GetCommitStats fetches diff statistics of a single commit, walking every page of its files
func (c *Client) GetCommitStats(ctx context.Context, owner, repo, sha string) (*CommitStats, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var stats *CommitStats

	for {
		commit, resp, err := c.rest.Repositories.GetCommit(ctx, owner, repo, sha, opts)
		if err != nil {
			return nil, wrapRESTError(err,
				"Failed to fetch commit statistics from GitHub",
				fmt.Sprintf("Could not retrieve commit %s of %s/%s", sha, owner, repo),
			)
		}

		if stats == nil {
			if commit.Stats == nil || commit.Stats.Additions == nil || commit.Stats.Deletions == nil {
				return nil, errors.New(
					errors.RefGitHubMalformed,
					"Commit statistics missing from GitHub response",
					fmt.Sprintf("Commit %s of %s/%s came back without stats", sha, owner, repo),
					nil,
					errors.LevelError,
				)
			}
			stats = &CommitStats{
				Additions: commit.Stats.GetAdditions(),
				Deletions: commit.Stats.GetDeletions(),
			}
		}
		stats.ChangedFiles += len(commit.Files)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Debug("Fetched stats for commit %s of %s/%s", sha, owner, repo)
	return stats, nil
}

func wrapRESTError(err error, title, detail string) error {
	// * Our own transport already classified it (e.g. exhausted rate limit budget)
	if errors.HasReference(err, errors.RefGitHubRateLimited) {
		return err
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return errors.New(errors.RefGitHubRateLimited, "GitHub rate limit exceeded", detail, err, errors.LevelWarning)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return errors.New(errors.RefGitHubNotFound, "Not found on GitHub", detail, err, errors.LevelInfo)
		case http.StatusTooManyRequests:
			return errors.New(errors.RefGitHubRateLimited, "GitHub rate limit exceeded", detail, err, errors.LevelWarning)
		}
	}

	return errors.New(errors.RefGitHubAPIError, title, detail, err, errors.LevelError)
}
