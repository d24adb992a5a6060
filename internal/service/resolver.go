package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/metrics"
	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
)

// * Resolver turns a username into a ResolutionResult. It never returns an error and never panics:
// * every failure becomes NOT_FOUND, NO_COMMITS or UPSTREAM_ERROR.
type Resolver struct {
	strategies      map[string]CursorStrategy
	defaultStrategy string
	timeout         time.Duration
}

func NewResolver(defaultStrategy string, timeout time.Duration, strategies ...CursorStrategy) (*Resolver, error) {
	r := &Resolver{
		strategies:      make(map[string]CursorStrategy, len(strategies)),
		defaultStrategy: defaultStrategy,
		timeout:         timeout,
	}
	for _, s := range strategies {
		r.strategies[s.Name()] = s
	}

	if _, ok := r.strategies[defaultStrategy]; !ok {
		return nil, fmt.Errorf("default strategy %q is not registered", defaultStrategy)
	}
	return r, nil
}

// * StrategyName maps a requested strategy to a registered one, unknown names meaning the default
func (r *Resolver) StrategyName(requested string) string {
	if _, ok := r.strategies[requested]; ok {
		return requested
	}
	return r.defaultStrategy
}

func (r *Resolver) Resolve(ctx context.Context, strategy, username string) (result models.ResolutionResult) {
	name := r.StrategyName(strategy)
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic while resolving %q with %s: %v", username, name, p)
			result = models.Failure(models.ReasonUpstreamError)
		}
		metrics.ResolutionsTotal.WithLabelValues(name, result.Outcome()).Inc()
		metrics.ResolutionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	req := ResolutionRequest{Username: strings.TrimSpace(username)}
	if err := req.Validate(); err != nil {
		logger.Debug("Rejected username %q without calling GitHub: %v", req.Username, err)
		return models.Failure(models.ReasonNotFound)
	}
	username = req.Username

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	commit, err := r.strategies[name].FirstCommit(ctx, username)
	if err != nil {
		reason := Classify(err)
		if reason == models.ReasonUpstreamError {
			logger.Warn("Resolving %s with %s failed: %v", username, name, err)
		} else {
			logger.Info("Resolving %s with %s: %s", username, name, reason)
		}
		return models.Failure(reason)
	}

	if commit == nil || !validCounts(commit.Additions, commit.Deletions, commit.ChangedFiles) {
		logger.Warn("Strategy %s produced an invalid commit for %s", name, username)
		return models.Failure(models.ReasonUpstreamError)
	}

	logger.Info("Resolved first commit of %s: %s", username, commit.ID)
	return models.Success(commit)
}

// * Classify maps the outermost error reference to a failure reason
func Classify(err error) models.FailureReason {
	switch errors.ReferenceOf(err) {
	case errors.RefGitHubNotFound:
		return models.ReasonNotFound
	case errors.RefNoCommits, errors.RefGitHubEmptyRepository:
		return models.ReasonNoCommits
	}
	return models.ReasonUpstreamError
}
