package worker

import (
	"context"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
)

type LookupSource interface {
	ConsumeLookups(ctx context.Context, handler func(ctx context.Context, lookup models.Lookup) error) error
}

type LookupSink interface {
	StoreLookup(ctx context.Context, lookup models.Lookup) error
}

// * LedgerConsumer moves queued lookups into the ledger store
type LedgerConsumer struct {
	source LookupSource
	sink   LookupSink
}

func NewLedgerConsumer(source LookupSource, sink LookupSink) *LedgerConsumer {
	return &LedgerConsumer{source: source, sink: sink}
}

func (c *LedgerConsumer) Start(ctx context.Context) error {
	if err := c.source.ConsumeLookups(ctx, c.handle); err != nil {
		return err
	}
	logger.Info("ledger consumer started")
	return nil
}

func (c *LedgerConsumer) handle(ctx context.Context, lookup models.Lookup) error {
	if err := c.sink.StoreLookup(ctx, lookup); err != nil {
		return err
	}
	logger.Debug("stored lookup %s for %s", lookup.ID, lookup.Username)
	return nil
}
