package github

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/metrics"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
)

const (
	resourceCore    = "core"
	resourceSearch  = "search"
	resourceGraphQL = "graphql"
)

type rateBudget struct {
	remaining int
	reset     time.Time
}

// * RateLimiter tracks GitHub's per-resource budgets and refuses requests once one is spent.
// * It never sleeps and never retries, so a resolution cannot stall until the reset.
type RateLimiter struct {
	mu      sync.Mutex
	budgets map[string]*rateBudget
	lowWarn int
	now     func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		budgets: make(map[string]*rateBudget),
		lowWarn: 100,
		now:     time.Now,
	}
}

func resourceFor(req *http.Request) string {
	switch {
	case strings.HasSuffix(req.URL.Path, "/graphql"):
		return resourceGraphQL
	case strings.Contains(req.URL.Path, "/search/"):
		return resourceSearch
	}
	return resourceCore
}

func (r *RateLimiter) checkBudget(resource string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.budgets[resource]
	if !ok {
		return nil
	}

	if b.remaining <= 0 && r.now().Before(b.reset) {
		return errors.New(
			errors.RefGitHubRateLimited,
			"GitHub rate limit exhausted",
			fmt.Sprintf("The %s rate limit resets at %s", resource, b.reset.Format(time.RFC1123)),
			nil,
			errors.LevelWarning,
		)
	}
	return nil
}

func (r *RateLimiter) updateFromHeaders(fallback string, headers http.Header) {
	remainingHeader := headers.Get("X-RateLimit-Remaining")
	if remainingHeader == "" {
		return
	}
	remaining, err := strconv.Atoi(remainingHeader)
	if err != nil {
		return
	}

	resource := headers.Get("X-RateLimit-Resource")
	if resource == "" {
		resource = fallback
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.budgets[resource]
	if !ok {
		b = &rateBudget{}
		r.budgets[resource] = b
	}
	b.remaining = remaining

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			b.reset = time.Unix(val, 0)
		}
	}

	metrics.GitHubRateLimitRemaining.WithLabelValues(resource).Set(float64(remaining))

	if b.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low %s rate limit: %d remaining. Resets at %s", resource, b.remaining, b.reset.Format(time.RFC1123))
	}
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resource := resourceFor(req)
		if err := r.checkBudget(resource); err != nil {
			logger.Warn("[RateLimiter] Refusing %s %s: %v", req.Method, req.URL.Path, err)
			return nil, err
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		// * 429 is surfaced to the caller as is; resolutions never retry
		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("[RateLimiter] Received 429 for %s (Retry-After: %s)", req.URL.Path, resp.Header.Get("Retry-After"))
		}

		r.updateFromHeaders(resource, resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
