package service

import (
	"github.com/KOFI-GYIMAH/first-commit/internal/config"
	"github.com/KOFI-GYIMAH/first-commit/internal/github"
)

// * NewResolverFromConfig builds a GitHub client and registers both strategies on it
func NewResolverFromConfig(cfg *config.Config) (*Resolver, error) {
	client := github.NewClient(cfg.GitHubToken,
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithTimeout(cfg.HTTPTimeout),
	)

	return NewResolver(cfg.Strategy, cfg.ResolveTimeout,
		NewOffsetRewriteStrategy(client),
		NewSearchStrategy(client),
	)
}
