package service

import (
	"context"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLookupStore struct {
	mock.Mock
}

func (m *MockLookupStore) InsertLookup(ctx context.Context, lookup *models.Lookup) error {
	args := m.Called(ctx, lookup)
	return args.Error(0)
}

func (m *MockLookupStore) RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lookup), args.Error(1)
}

func (m *MockLookupStore) TopUsernames(ctx context.Context, limit int) ([]models.UsernameLookupCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UsernameLookupCount), args.Error(1)
}

func (m *MockLookupStore) PurgeLookupsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordLookup(ctx context.Context, lookup models.Lookup) error {
	args := m.Called(ctx, lookup)
	return args.Error(0)
}

func TestNewLedgerService(t *testing.T) {
	service := NewLedgerService(new(MockLookupStore), new(MockRecorder))
	assert.NotNil(t, service)
}

func TestLedgerService_Record(t *testing.T) {
	lookup := models.NewLookup("octocat", "offset-rewrite", models.Failure(models.ReasonNoCommits), time.Second)

	tests := []struct {
		name      string
		recordErr error
	}{
		{name: "success", recordErr: nil},
		{name: "recorder failure is swallowed", recordErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := new(MockRecorder)
			recorder.On("RecordLookup", mock.Anything, lookup).Return(tt.recordErr)

			service := NewLedgerService(nil, recorder)
			assert.NotPanics(t, func() { service.Record(context.Background(), lookup) })

			recorder.AssertExpectations(t)
		})
	}
}

func TestLedgerService_RecordWithoutRecorder(t *testing.T) {
	service := NewLedgerService(nil, nil)
	assert.NotPanics(t, func() {
		service.Record(context.Background(), models.Lookup{ID: uuid.New(), Username: "octocat"})
	})
}

func TestLedgerService_RecentLookups(t *testing.T) {
	rows := []models.Lookup{{Username: "octocat", Outcome: models.OutcomeSuccess}}

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
		mockRows      []models.Lookup
		mockError     error
		expectError   bool
	}{
		{name: "success", limit: 5, expectedLimit: 5, mockRows: rows},
		{name: "default limit", limit: 0, expectedLimit: DefaultListLimit, mockRows: rows},
		{name: "capped limit", limit: 5000, expectedLimit: MaxListLimit, mockRows: rows},
		{name: "store error", limit: 5, expectedLimit: 5, mockError: assert.AnError, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockLookupStore)
			store.On("RecentLookups", mock.Anything, tt.expectedLimit).Return(tt.mockRows, tt.mockError)

			lookups, err := NewLedgerService(store, nil).RecentLookups(context.Background(), tt.limit)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, lookups)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockRows, lookups)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestLedgerService_TopUsernames(t *testing.T) {
	store := new(MockLookupStore)
	expected := []models.UsernameLookupCount{{Username: "octocat", LookupCount: 3}}
	store.On("TopUsernames", mock.Anything, 10).Return(expected, nil)

	top, err := NewLedgerService(store, nil).TopUsernames(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, expected, top)
	store.AssertExpectations(t)
}

func TestLedgerService_WithoutStore(t *testing.T) {
	service := NewLedgerService(nil, nil)

	_, err := service.RecentLookups(context.Background(), 10)
	assert.Equal(t, errors.RefLedgerUnavailable, errors.ReferenceOf(err))

	_, err = service.TopUsernames(context.Background(), 10)
	assert.Equal(t, errors.RefLedgerUnavailable, errors.ReferenceOf(err))

	_, err = service.PurgeOlderThan(context.Background(), time.Hour)
	assert.Equal(t, errors.RefLedgerUnavailable, errors.ReferenceOf(err))

	err = service.StoreLookup(context.Background(), models.Lookup{})
	assert.Equal(t, errors.RefLedgerUnavailable, errors.ReferenceOf(err))
}

func TestLedgerService_PurgeOlderThan(t *testing.T) {
	store := new(MockLookupStore)
	store.On("PurgeLookupsBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		age := time.Since(cutoff)
		return age > 47*time.Hour && age < 49*time.Hour
	})).Return(int64(3), nil)

	n, err := NewLedgerService(store, nil).PurgeOlderThan(context.Background(), 48*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	store.AssertExpectations(t)
}

func TestLedgerService_StoreLookup(t *testing.T) {
	store := new(MockLookupStore)
	lookup := models.Lookup{ID: uuid.New(), Username: "octocat", Outcome: models.OutcomeSuccess}
	store.On("InsertLookup", mock.Anything, mock.MatchedBy(func(l *models.Lookup) bool {
		return l.ID == lookup.ID
	})).Return(nil)

	assert.NoError(t, NewLedgerService(store, nil).StoreLookup(context.Background(), lookup))
	store.AssertExpectations(t)
}
