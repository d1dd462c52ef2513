package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// NewEnterpriseClient posts GraphQL queries straight to the mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        log.New(io.Discard, "", 0),
	}
	return gateway, server
}

func respondWith(t *testing.T, status int, body string, bodyContains ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		for _, s := range bodyContains {
			assert.Contains(t, string(raw), s)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

const rateLimitJSON = `"rateLimit":{"limit":5000,"cost":1,"remaining":4999,"resetAt":"2024-03-01T00:00:00Z"}`

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGitHubGateway_FetchItems(t *testing.T) {
	repo := domain.RepoID{Owner: "fosskers", Name: "aura"}
	closed := ts("2024-01-03T00:00:00Z")
	merged := ts("2024-01-04T00:00:00Z")

	testCases := []struct {
		name          string
		kind          domain.Kind
		cursor        domain.Cursor
		queryContains []string
		status        int
		responseBody  string
		expectedPage  *domain.Page[domain.Item]
		expectedErr   error
	}{
		{
			name:          "issues - happy path",
			kind:          domain.KindIssues,
			queryContains: []string{"issues(first: $pageSize", `"owner":"fosskers"`, `"cursor":null`},
			status:        http.StatusOK,
			responseBody: `{"data":{` + rateLimitJSON + `,"repository":{"issues":{
				"pageInfo":{"hasNextPage":true,"endCursor":"Y3Vyc29y"},
				"nodes":[{"number":7,"author":{"login":"alice"},"createdAt":"2024-01-02T00:00:00Z","closedAt":"2024-01-03T00:00:00Z",
					"comments":{"nodes":[
						{"author":{"login":"alice"},"authorAssociation":"NONE","createdAt":"2024-01-02T00:30:00Z"},
						{"author":null,"authorAssociation":"MEMBER","createdAt":"2024-01-02T01:00:00Z"}]}}]}}}}`,
			expectedPage: &domain.Page[domain.Item]{
				Items: []domain.Item{{
					Kind:      domain.KindIssues,
					Number:    7,
					Author:    "alice",
					CreatedAt: ts("2024-01-02T00:00:00Z"),
					ClosedAt:  &closed,
					Comments: []domain.Comment{
						{Author: "alice", CreatedAt: ts("2024-01-02T00:30:00Z"), Association: domain.AssociationNone},
						{Author: domain.GhostLogin, CreatedAt: ts("2024-01-02T01:00:00Z"), Association: domain.AssociationMember, Official: true},
					},
				}},
				Cursor:    domain.Cursor{After: "Y3Vyc29y", HasNextPage: true},
				RateLimit: domain.RateLimit{Limit: 5000, Cost: 1, Remaining: 4999, ResetAt: ts("2024-03-01T00:00:00Z")},
			},
		},
		{
			name:          "pull requests - reviews interleaved with comments",
			kind:          domain.KindPullRequests,
			cursor:        domain.Cursor{After: "prev", HasNextPage: true},
			queryContains: []string{"pullRequests(first: $pageSize", `"cursor":"prev"`},
			status:        http.StatusOK,
			responseBody: `{"data":{` + rateLimitJSON + `,"repository":{"pullRequests":{
				"pageInfo":{"hasNextPage":false,"endCursor":"end"},
				"nodes":[{"number":3,"author":{"login":"carol"},"createdAt":"2024-01-02T00:00:00Z",
					"closedAt":"2024-01-04T00:00:00Z","mergedAt":"2024-01-04T00:00:00Z",
					"comments":{"nodes":[
						{"author":{"login":"dave"},"authorAssociation":"CONTRIBUTOR","createdAt":"2024-01-02T03:00:00Z"}]},
					"reviews":{"nodes":[
						{"author":{"login":"erin"},"authorAssociation":"OWNER","submittedAt":"2024-01-02T02:00:00Z"},
						{"author":{"login":"frank"},"authorAssociation":"MEMBER","submittedAt":null}]}}]}}}}`,
			expectedPage: &domain.Page[domain.Item]{
				Items: []domain.Item{{
					Kind:      domain.KindPullRequests,
					Number:    3,
					Author:    "carol",
					CreatedAt: ts("2024-01-02T00:00:00Z"),
					ClosedAt:  &merged,
					MergedAt:  &merged,
					Comments: []domain.Comment{
						{Author: "erin", CreatedAt: ts("2024-01-02T02:00:00Z"), Association: domain.AssociationOwner, Official: true},
						{Author: "dave", CreatedAt: ts("2024-01-02T03:00:00Z"), Association: domain.AssociationContributor},
					},
				}},
				Cursor:    domain.Cursor{After: "end", HasNextPage: false},
				RateLimit: domain.RateLimit{Limit: 5000, Cost: 1, Remaining: 4999, ResetAt: ts("2024-03-01T00:00:00Z")},
			},
		},
		{
			name:         "error case - GraphQL rate limit",
			kind:         domain.KindIssues,
			status:       http.StatusOK,
			responseBody: `{"errors":[{"type":"RATE_LIMITED","message":"API rate limit exceeded for user ID 1."}]}`,
			expectedErr:  domain.ErrRateLimitExhausted,
		},
		{
			name:         "error case - unknown repository",
			kind:         domain.KindIssues,
			status:       http.StatusOK,
			responseBody: `{"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a Repository with the name 'fosskers/aura'."}]}`,
			expectedErr:  domain.ErrMalformedResponse,
		},
		{
			name:         "error case - bad credentials",
			kind:         domain.KindPullRequests,
			status:       http.StatusUnauthorized,
			responseBody: `{"message":"Bad credentials"}`,
			expectedErr:  domain.ErrAuth,
		},
		{
			name:   "error case - item without creation time",
			kind:   domain.KindIssues,
			status: http.StatusOK,
			responseBody: `{"data":{` + rateLimitJSON + `,"repository":{"issues":{
				"pageInfo":{"hasNextPage":false,"endCursor":null},
				"nodes":[{"number":1,"author":{"login":"alice"},"comments":{"nodes":[]}}]}}}}`,
			expectedErr: domain.ErrMalformedResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, respondWith(t, tc.status, tc.responseBody, tc.queryContains...))
			defer server.Close()

			q := ItemQuery{Repo: repo, Kind: tc.kind, PageSize: 50}
			page, err := gateway.FetchItems(context.Background(), q, tc.cursor)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, page)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedPage, page)
		})
	}
}

func TestGitHubGateway_FetchCommitCount(t *testing.T) {
	body := `{"data":{"repository":{"pullRequest":{"commits":{"totalCount":4}}}}}`
	gateway, server := setupTestGateway(t, respondWith(t, http.StatusOK, body, "pullRequest(number: $number)", `"number":12`))
	defer server.Close()

	n, err := gateway.FetchCommitCount(context.Background(), domain.RepoID{Owner: "o", Name: "r"}, 12)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestGitHubGateway_FetchUsers(t *testing.T) {
	body := `{"data":{` + rateLimitJSON + `,"search":{
		"pageInfo":{"hasNextPage":true,"endCursor":"next"},
		"edges":[
			{"node":{"__typename":"User","login":"alice","name":"Alice","followers":{"totalCount":120},
				"contributionsCollection":{"contributionCalendar":{"totalContributions":900},"restrictedContributionsCount":100}}},
			{"node":{"__typename":"Organization"}}]}}}`
	gateway, server := setupTestGateway(t, respondWith(t, http.StatusOK, body, `location:\"New York\" sort:followers-desc`))
	defer server.Close()

	page, err := gateway.FetchUsers(context.Background(), UserQuery{Location: "New York", PageSize: 10}, domain.Cursor{})
	require.NoError(t, err)
	assert.Equal(t, []domain.UserContribution{{Login: "alice", Name: "Alice", Followers: 120, Contributions: 800}}, page.Items)
	assert.Equal(t, domain.Cursor{After: "next", HasNextPage: true}, page.Cursor)
}

func TestGitHubGateway_FetchUserCount(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expected    int
		expectError bool
	}{
		{
			name: "happy path - returns the search total",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/search/users")
				assert.Contains(t, r.URL.Query().Get("q"), "location:Tokyo")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"total_count": 42, "incomplete_results": false, "items": []}`)
			},
			expected: 42,
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			n, err := gateway.FetchUserCount(context.Background(), "Tokyo")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "failed to search users with REST API")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, n)
		})
	}
}

func TestGitHubGateway_FetchRateLimit(t *testing.T) {
	body := `{"data":{"rateLimit":{"limit":5000,"remaining":1234,"resetAt":"2024-03-01T00:00:00Z"}}}`
	gateway, server := setupTestGateway(t, respondWith(t, http.StatusOK, body, "rateLimit"))
	defer server.Close()

	rl, err := gateway.FetchRateLimit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.RateLimit{Limit: 5000, Remaining: 1234, ResetAt: ts("2024-03-01T00:00:00Z")}, rl)
}

func TestInterleave(t *testing.T) {
	at := func(h int) time.Time { return ts("2024-01-01T00:00:00Z").Add(time.Duration(h) * time.Hour) }
	comments := []domain.Comment{{Author: "c1", CreatedAt: at(1)}, {Author: "c2", CreatedAt: at(3)}}
	reviews := []domain.Comment{{Author: "r1", CreatedAt: at(0)}, {Author: "r2", CreatedAt: at(3)}, {Author: "r3", CreatedAt: at(5)}}

	got := interleave(comments, reviews)

	var authors []string
	for _, c := range got {
		authors = append(authors, c.Author)
	}
	assert.Equal(t, []string{"r1", "c1", "c2", "r2", "r3"}, authors)
}
