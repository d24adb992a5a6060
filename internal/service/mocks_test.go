package service

import (
	"context"

	"github.com/KOFI-GYIMAH/first-commit/internal/github"
	"github.com/stretchr/testify/mock"
)

type MockHistorySource struct {
	mock.Mock
}

func (m *MockHistorySource) OldestRepository(ctx context.Context, username string) (*github.Repository, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.Repository), args.Error(1)
}

func (m *MockHistorySource) CommitHistory(ctx context.Context, owner, name, after string) (*github.CommitHistoryPage, error) {
	args := m.Called(ctx, owner, name, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.CommitHistoryPage), args.Error(1)
}

type MockSearchSource struct {
	mock.Mock
}

func (m *MockSearchSource) GetUser(ctx context.Context, username string) (*github.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.User), args.Error(1)
}

func (m *MockSearchSource) SearchOldestCommit(ctx context.Context, username string) (*github.SearchCommit, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.SearchCommit), args.Error(1)
}

func (m *MockSearchSource) GetCommitStats(ctx context.Context, owner, repo, sha string) (*github.CommitStats, error) {
	args := m.Called(ctx, owner, repo, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*github.CommitStats), args.Error(1)
}

func intPtr(v int) *int { return &v }
