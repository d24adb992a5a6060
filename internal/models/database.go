package models

import (
	"context"
	"time"
)

// * This interface defines the lookup ledger operations needed by the application
type LookupStore interface {
	InsertLookup(ctx context.Context, lookup *Lookup) error
	RecentLookups(ctx context.Context, limit int) ([]Lookup, error)
	TopUsernames(ctx context.Context, limit int) ([]UsernameLookupCount, error)
	PurgeLookupsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// * LookupRecorder accepts lookups for the ledger, either directly or through a queue
type LookupRecorder interface {
	RecordLookup(ctx context.Context, lookup Lookup) error
}
