package service

import (
	"context"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/config"
	"github.com/KOFI-GYIMAH/first-commit/internal/metrics"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name  string
	calls int
	fn    func(ctx context.Context, username string) (*models.CommitRecord, error)
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) FirstCommit(ctx context.Context, username string) (*models.CommitRecord, error) {
	s.calls++
	return s.fn(ctx, username)
}

func returning(commit *models.CommitRecord, err error) func(context.Context, string) (*models.CommitRecord, error) {
	return func(context.Context, string) (*models.CommitRecord, error) { return commit, err }
}

func newTestResolver(t *testing.T, offset, search *stubStrategy) *Resolver {
	t.Helper()
	r, err := NewResolver(config.StrategyOffsetRewrite, time.Second, offset, search)
	require.NoError(t, err)
	return r
}

func sampleCommit() *models.CommitRecord {
	return &models.CommitRecord{
		ID:           rootSHA,
		Message:      "first commit",
		CommittedAt:  time.Date(2011, 1, 26, 19, 1, 12, 0, time.UTC),
		URL:          "https://github.com/octocat/Hello-World/commit/" + rootSHA,
		Additions:    1,
		ChangedFiles: 1,
		Author:       &models.Author{Name: "The Octocat"},
		BranchName:   "master",
	}
}

func TestNewResolver_UnknownDefault(t *testing.T) {
	_, err := NewResolver("quantum", time.Second, &stubStrategy{name: config.StrategyOffsetRewrite})
	assert.Error(t, err)
}

func TestResolver_StrategyName(t *testing.T) {
	r := newTestResolver(t,
		&stubStrategy{name: config.StrategyOffsetRewrite},
		&stubStrategy{name: config.StrategySearchBased},
	)

	assert.Equal(t, config.StrategyOffsetRewrite, r.StrategyName(""))
	assert.Equal(t, config.StrategySearchBased, r.StrategyName(config.StrategySearchBased))
	assert.Equal(t, config.StrategyOffsetRewrite, r.StrategyName("graphql-walk"))
}

func TestResolver_Success(t *testing.T) {
	commit := sampleCommit()
	offset := &stubStrategy{name: config.StrategyOffsetRewrite, fn: returning(commit, nil)}
	search := &stubStrategy{name: config.StrategySearchBased, fn: returning(nil, nil)}
	r := newTestResolver(t, offset, search)

	result := r.Resolve(context.Background(), "", "  octocat ")

	assert.True(t, result.OK())
	assert.Same(t, commit, result.Commit)
	assert.Empty(t, result.Message)
	assert.Equal(t, 1, offset.calls)
	assert.Equal(t, 0, search.calls)
}

func TestResolver_InvalidUsernameSkipsUpstream(t *testing.T) {
	offset := &stubStrategy{name: config.StrategyOffsetRewrite, fn: returning(sampleCommit(), nil)}
	r := newTestResolver(t, offset, &stubStrategy{name: config.StrategySearchBased})

	for _, username := range []string{"", "   ", "-leading", "has space", "a/b", "waytoolongusernamethatgoespastthirtyninechars"} {
		result := r.Resolve(context.Background(), "", username)
		assert.Equal(t, models.Failure(models.ReasonNotFound), result, "username %q", username)
		assert.Equal(t, "User not found", result.Message)
	}
	assert.Equal(t, 0, offset.calls)
}

func TestResolver_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected models.FailureReason
	}{
		{"unknown user", errors.New(errors.RefGitHubNotFound, "Not found on GitHub", "", nil, errors.LevelInfo), models.ReasonNotFound},
		{"no commits", errors.New(errors.RefNoCommits, "No commits to show", "", nil, errors.LevelInfo), models.ReasonNoCommits},
		{"empty repository", errors.New(errors.RefGitHubEmptyRepository, "Empty", "", nil, errors.LevelInfo), models.ReasonNoCommits},
		{"rate limited", errors.New(errors.RefGitHubRateLimited, "Rate limited", "", nil, errors.LevelWarning), models.ReasonUpstreamError},
		{"malformed cursor", errors.New(errors.RefMalformedCursor, "Bad cursor", "", nil, errors.LevelError), models.ReasonUpstreamError},
		{"plain error", context.DeadlineExceeded, models.ReasonUpstreamError},
		{
			"wrapped not found",
			errors.New(errors.RefGitHubAPIError, "Stats failed", "", errors.New(errors.RefGitHubNotFound, "Not found", "", nil, errors.LevelInfo), errors.LevelError),
			models.ReasonUpstreamError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t,
				&stubStrategy{name: config.StrategyOffsetRewrite, fn: returning(nil, tt.err)},
				&stubStrategy{name: config.StrategySearchBased},
			)

			result := r.Resolve(context.Background(), config.StrategyOffsetRewrite, "octocat")

			assert.Nil(t, result.Commit)
			assert.Equal(t, tt.expected, result.Reason)
			assert.Equal(t, tt.expected.Message(), result.Message)
		})
	}
}

func TestResolver_InvalidCommitIsUpstream(t *testing.T) {
	bad := sampleCommit()
	bad.ChangedFiles = -1

	for _, commit := range []*models.CommitRecord{nil, bad} {
		r := newTestResolver(t,
			&stubStrategy{name: config.StrategyOffsetRewrite, fn: returning(commit, nil)},
			&stubStrategy{name: config.StrategySearchBased},
		)
		assert.Equal(t, models.Failure(models.ReasonUpstreamError), r.Resolve(context.Background(), "", "octocat"))
	}
}

func TestResolver_RecoversFromPanic(t *testing.T) {
	r := newTestResolver(t,
		&stubStrategy{name: config.StrategyOffsetRewrite, fn: func(context.Context, string) (*models.CommitRecord, error) {
			panic("nil map write")
		}},
		&stubStrategy{name: config.StrategySearchBased},
	)

	var result models.ResolutionResult
	assert.NotPanics(t, func() {
		result = r.Resolve(context.Background(), "", "octocat")
	})
	assert.Equal(t, models.Failure(models.ReasonUpstreamError), result)
}

func TestResolver_AppliesTimeout(t *testing.T) {
	blocking := &stubStrategy{name: config.StrategyOffsetRewrite, fn: func(ctx context.Context, _ string) (*models.CommitRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	r, err := NewResolver(config.StrategyOffsetRewrite, 20*time.Millisecond, blocking)
	require.NoError(t, err)

	start := time.Now()
	result := r.Resolve(context.Background(), "", "octocat")

	assert.Equal(t, models.ReasonUpstreamError, result.Reason)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestResolver_Idempotent(t *testing.T) {
	r := newTestResolver(t,
		&stubStrategy{name: config.StrategyOffsetRewrite, fn: returning(sampleCommit(), nil)},
		&stubStrategy{name: config.StrategySearchBased, fn: returning(nil, errors.New(errors.RefNoCommits, "No commits", "", nil, errors.LevelInfo))},
	)

	for _, strategy := range []string{config.StrategyOffsetRewrite, config.StrategySearchBased} {
		first := r.Resolve(context.Background(), strategy, "octocat")
		second := r.Resolve(context.Background(), strategy, "octocat")
		assert.Equal(t, first, second, strategy)
	}
}

func TestResolver_RecordsMetrics(t *testing.T) {
	r := newTestResolver(t,
		&stubStrategy{name: config.StrategyOffsetRewrite},
		&stubStrategy{name: config.StrategySearchBased, fn: returning(nil, errors.New(errors.RefNoCommits, "No commits", "", nil, errors.LevelInfo))},
	)
	counter := metrics.ResolutionsTotal.WithLabelValues(config.StrategySearchBased, string(models.ReasonNoCommits))
	before := testutil.ToFloat64(counter)

	r.Resolve(context.Background(), config.StrategySearchBased, "octocat")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
