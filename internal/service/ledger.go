package service

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// * LedgerService records served lookups and answers questions about them.
// * A nil store means no database is configured; a nil recorder means lookups are only logged.
type LedgerService struct {
	store    models.LookupStore
	recorder models.LookupRecorder
}

func NewLedgerService(store models.LookupStore, recorder models.LookupRecorder) *LedgerService {
	return &LedgerService{
		store:    store,
		recorder: recorder,
	}
}

// * Record never fails the caller, the ledger is best effort
func (s *LedgerService) Record(ctx context.Context, lookup models.Lookup) {
	if s.recorder == nil {
		logger.Debug("Lookup %s: %s via %s -> %s in %dms", lookup.ID, lookup.Username, lookup.Strategy, lookup.Outcome, lookup.DurationMS)
		return
	}

	if err := s.recorder.RecordLookup(ctx, lookup); err != nil {
		logger.Warn("Failed to record lookup %s for %s: %v", lookup.ID, lookup.Username, err)
	}
}

func (s *LedgerService) RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error) {
	if s.store == nil {
		return nil, ledgerUnavailable()
	}
	return s.store.RecentLookups(ctx, clampLimit(limit))
}

func (s *LedgerService) TopUsernames(ctx context.Context, limit int) ([]models.UsernameLookupCount, error) {
	if s.store == nil {
		return nil, ledgerUnavailable()
	}
	return s.store.TopUsernames(ctx, clampLimit(limit))
}

// * PurgeOlderThan deletes lookups resolved before now minus retention
func (s *LedgerService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	if s.store == nil {
		return 0, ledgerUnavailable()
	}

	cutoff := time.Now().UTC().Add(-retention)
	n, err := s.store.PurgeLookupsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	logger.Info("Purged %d lookups resolved before %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}

// * StoreLookup writes a lookup taken off the queue
func (s *LedgerService) StoreLookup(ctx context.Context, lookup models.Lookup) error {
	if s.store == nil {
		return ledgerUnavailable()
	}
	return s.store.InsertLookup(ctx, &lookup)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

func ledgerUnavailable() error {
	return errors.New(
		errors.RefLedgerUnavailable,
		"Lookup ledger is not configured",
		"Set DB_PATH to keep a history of lookups",
		nil,
		errors.LevelWarning,
	)
}
