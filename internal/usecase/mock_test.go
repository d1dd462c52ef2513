package usecase

import (
	"context"
	"time"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/naka-gawa/github-health/internal/gateway"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchItems(ctx context.Context, q gateway.ItemQuery, cursor domain.Cursor) (*domain.Page[domain.Item], error) {
	args := m.Called(ctx, q, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Item]), args.Error(1)
}

func (m *mockFetcher) FetchCommitCount(ctx context.Context, repo domain.RepoID, number int) (int, error) {
	args := m.Called(ctx, repo, number)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) FetchUsers(ctx context.Context, q gateway.UserQuery, cursor domain.Cursor) (*domain.Page[domain.UserContribution], error) {
	args := m.Called(ctx, q, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.UserContribution]), args.Error(1)
}

func (m *mockFetcher) FetchUserCount(ctx context.Context, location string) (int, error) {
	args := m.Called(ctx, location)
	return args.Int(0), args.Error(1)
}

func (m *mockFetcher) FetchRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateLimit), args.Error(1)
}

var (
	epoch         = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	plentyOfQuota = domain.RateLimit{Limit: 5000, Cost: 1, Remaining: 4000}
)

// at returns epoch shifted by the given number of hours.
func at(hours float64) time.Time {
	return epoch.Add(time.Duration(hours * float64(time.Hour)))
}

func tp(t time.Time) *time.Time {
	return &t
}

func itemPage(items []domain.Item, next string) *domain.Page[domain.Item] {
	return &domain.Page[domain.Item]{
		Items:     items,
		Cursor:    domain.Cursor{After: next, HasNextPage: next != ""},
		RateLimit: plentyOfQuota,
	}
}
