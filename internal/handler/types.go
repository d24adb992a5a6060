package handler

import (
	"context"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
)

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Resolver interface {
	Resolve(ctx context.Context, strategy, username string) models.ResolutionResult
	StrategyName(requested string) string
}

type Ledger interface {
	Record(ctx context.Context, lookup models.Lookup)
	RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error)
	TopUsernames(ctx context.Context, limit int) ([]models.UsernameLookupCount, error)
}
