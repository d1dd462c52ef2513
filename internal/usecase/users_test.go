package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/naka-gawa/github-health/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func userPage(users []domain.UserContribution, next string) *domain.Page[domain.UserContribution] {
	return &domain.Page[domain.UserContribution]{
		Items:     users,
		Cursor:    domain.Cursor{After: next, HasNextPage: next != ""},
		RateLimit: plentyOfQuota,
	}
}

func TestRankUsers_Pipeline(t *testing.T) {
	var users []domain.UserContribution
	for i := range 600 {
		users = append(users, domain.UserContribution{
			Login:         fmt.Sprintf("u%03d", i),
			Followers:     i,
			Contributions: 600 - i,
		})
	}

	ranked := rankUsers(users)

	require.Len(t, ranked, topUsers)
	// The 500 top contributors are u000..u499; the 250 most followed of
	// those are u250..u499, ordered back by contributions.
	assert.Equal(t, "u250", ranked[0].Login)
	assert.Equal(t, "u349", ranked[topUsers-1].Login)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Contributions, ranked[i].Contributions)
	}
}

func TestRankUsers_TieBreakByLogin(t *testing.T) {
	users := []domain.UserContribution{
		{Login: "carol", Followers: 1, Contributions: 5},
		{Login: "alice", Followers: 1, Contributions: 5},
		{Login: "bob", Followers: 9, Contributions: 7},
	}

	ranked := rankUsers(users)

	var logins []string
	for _, u := range ranked {
		logins = append(logins, u.Login)
	}
	assert.Equal(t, []string{"bob", "alice", "carol"}, logins)
	assert.Equal(t, "carol", users[0].Login, "input is left untouched")
}

func TestAggregator_RankUsers(t *testing.T) {
	query := gateway.UserQuery{Location: "New York", PageSize: userPageSize}

	testCases := []struct {
		name          string
		setupMock     func(m *mockFetcher)
		expectedErr   error
		expectedUsers []string
		expectedTotal int
	}{
		{
			name: "stops at the first user without followers",
			setupMock: func(m *mockFetcher) {
				m.On("FetchUserCount", mock.Anything, "New York").Return(1234, nil)
				m.On("FetchUsers", mock.Anything, query, domain.Cursor{}).Return(userPage([]domain.UserContribution{
					{Login: "ann", Followers: 50, Contributions: 10},
					{Login: "ben", Followers: 20, Contributions: 30},
				}, "c1"), nil)
				m.On("FetchUsers", mock.Anything, query, domain.Cursor{After: "c1", HasNextPage: true}).Return(userPage([]domain.UserContribution{
					{Login: "cat", Followers: 3, Contributions: 20},
					{Login: "dan", Followers: 0, Contributions: 99},
				}, "c2"), nil)
			},
			expectedUsers: []string{"dan", "ben", "cat", "ann"},
			expectedTotal: 1234,
		},
		{
			name: "count failure aborts the ranking",
			setupMock: func(m *mockFetcher) {
				m.On("FetchUserCount", mock.Anything, "New York").Return(0, fmt.Errorf("failed to search users with REST API: %w", domain.ErrAuth))
				m.On("FetchUsers", mock.Anything, query, mock.Anything).Return(userPage(nil, ""), nil).Maybe()
			},
			expectedErr: domain.ErrAuth,
		},
		{
			name: "search failure aborts the ranking",
			setupMock: func(m *mockFetcher) {
				m.On("FetchUserCount", mock.Anything, "New York").Return(10, nil).Maybe()
				m.On("FetchUsers", mock.Anything, query, domain.Cursor{}).Return(nil, domain.ErrMalformedResponse)
			},
			expectedErr: domain.ErrMalformedResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			tc.setupMock(fetcher)

			report, err := newTestAggregator(fetcher).RankUsers(context.Background(), "New York")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, report)
				var fe *domain.FetchError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, domain.KindUsers, fe.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "New York", report.Location)
			assert.Equal(t, tc.expectedTotal, report.TotalUsers)
			var logins []string
			for _, u := range report.Users {
				logins = append(logins, u.Login)
			}
			assert.Equal(t, tc.expectedUsers, logins)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAggregator_RankUsersRequiresLocation(t *testing.T) {
	_, err := newTestAggregator(new(mockFetcher)).RankUsers(context.Background(), "")
	assert.Error(t, err)
}
