// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// MaxPageSize is the largest page GitHub's GraphQL connections accept.
const MaxPageSize = 100

// ItemQuery selects one collection of one repository.
type ItemQuery struct {
	Repo     domain.RepoID
	Kind     domain.Kind
	PageSize int
}

// UserQuery selects users by location.
type UserQuery struct {
	Location string
	PageSize int
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchItems fetches one page of issues or pull requests, newest first.
	FetchItems(ctx context.Context, q ItemQuery, cursor domain.Cursor) (*domain.Page[domain.Item], error)
	// FetchCommitCount counts the commits of a single pull request.
	FetchCommitCount(ctx context.Context, repo domain.RepoID, number int) (int, error)
	FetchUsers(ctx context.Context, q UserQuery, cursor domain.Cursor) (*domain.Page[domain.UserContribution], error)
	FetchUserCount(ctx context.Context, location string) (int, error)
	FetchRateLimit(ctx context.Context) (*domain.RateLimit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = newStatusTransport(rateLimitWaiter, defaultServerRetries, nil)
	if token != "" {
		transport = &oauth2.Transport{
			Base:   transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func itemVariables(q ItemQuery, cursor domain.Cursor) map[string]interface{} {
	pageSize := q.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return map[string]interface{}{
		"owner":    githubv4.String(q.Repo.Owner),
		"name":     githubv4.String(q.Repo.Name),
		"pageSize": githubv4.Int(pageSize),
		"cursor":   cursorVariable(cursor),
	}
}

func cursorVariable(cursor domain.Cursor) *githubv4.String {
	if cursor.After == "" {
		return (*githubv4.String)(nil)
	}
	return githubv4.NewString(githubv4.String(cursor.After))
}

// FetchItems fetches a single page of issues or pull requests.
func (g *GitHubGateway) FetchItems(ctx context.Context, q ItemQuery, cursor domain.Cursor) (*domain.Page[domain.Item], error) {
	variables := itemVariables(q, cursor)
	g.logger.Printf("  Fetching %s page for %s (after %q)...\n", q.Kind, q.Repo, cursor.After)

	switch q.Kind {
	case domain.KindIssues:
		var query issuesQuery
		if err := g.graphqlClient.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for issues: %w", classifyError(err))
		}
		conn := query.Repository.Issues
		items := make([]domain.Item, 0, len(conn.Nodes))
		for _, node := range conn.Nodes {
			item, err := issueFromNode(node)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &domain.Page[domain.Item]{
			Items:     items,
			Cursor:    nextCursor(conn.PageInfo),
			RateLimit: rateLimitFromFields(query.RateLimit),
		}, nil

	case domain.KindPullRequests:
		var query pullRequestsQuery
		if err := g.graphqlClient.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for pull requests: %w", classifyError(err))
		}
		conn := query.Repository.PullRequests
		items := make([]domain.Item, 0, len(conn.Nodes))
		for _, node := range conn.Nodes {
			item, err := pullRequestFromNode(node)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &domain.Page[domain.Item]{
			Items:     items,
			Cursor:    nextCursor(conn.PageInfo),
			RateLimit: rateLimitFromFields(query.RateLimit),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported collection %s", q.Kind)
	}
}

// FetchCommitCount counts the commits of one pull request.
func (g *GitHubGateway) FetchCommitCount(ctx context.Context, repo domain.RepoID, number int) (int, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(repo.Owner),
		"name":   githubv4.String(repo.Name),
		"number": githubv4.Int(number),
	}
	var query commitCountQuery
	if err := g.graphqlClient.Query(ctx, &query, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for commits of %s#%d: %w", repo, number, classifyError(err))
	}
	return int(query.Repository.PullRequest.Commits.TotalCount), nil
}

func userSearchString(location string) string {
	if strings.ContainsAny(location, " \t") {
		location = `"` + location + `"`
	}
	return "type:user location:" + location
}

// FetchUsers fetches a page of users of a location, sorted by followers.
func (g *GitHubGateway) FetchUsers(ctx context.Context, q UserQuery, cursor domain.Cursor) (*domain.Page[domain.UserContribution], error) {
	pageSize := q.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	variables := map[string]interface{}{
		"query":    githubv4.String(userSearchString(q.Location) + " sort:followers-desc"),
		"pageSize": githubv4.Int(pageSize),
		"cursor":   cursorVariable(cursor),
	}
	g.logger.Printf("  Fetching users page for %s (after %q)...\n", q.Location, cursor.After)

	var query userSearchQuery
	if err := g.graphqlClient.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for users: %w", classifyError(err))
	}

	users := make([]domain.UserContribution, 0, len(query.Search.Edges))
	for _, edge := range query.Search.Edges {
		if edge.Node.Typename != "User" {
			continue
		}
		u := edge.Node.User
		collection := u.ContributionsCollection
		users = append(users, domain.UserContribution{
			Login:         string(u.Login),
			Name:          string(u.Name),
			Followers:     int(u.Followers.TotalCount),
			Contributions: int(collection.ContributionCalendar.TotalContributions - collection.RestrictedContributionsCount),
		})
	}
	return &domain.Page[domain.UserContribution]{
		Items:     users,
		Cursor:    nextCursor(query.Search.PageInfo),
		RateLimit: rateLimitFromFields(query.RateLimit),
	}, nil
}

// FetchUserCount returns how many users the REST search finds for a location.
func (g *GitHubGateway) FetchUserCount(ctx context.Context, location string) (int, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.restClient.Search.Users(ctx, userSearchString(location), opts)
	if err != nil {
		return 0, fmt.Errorf("failed to search users with REST API: %w", classifyError(err))
	}
	return result.GetTotal(), nil
}

// FetchRateLimit reports the remaining GraphQL quota of the token.
func (g *GitHubGateway) FetchRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	var query rateLimitQuery
	if err := g.graphqlClient.Query(ctx, &query, nil); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for rate limit: %w", classifyError(err))
	}
	return &domain.RateLimit{
		Limit:     int(query.RateLimit.Limit),
		Remaining: int(query.RateLimit.Remaining),
		ResetAt:   query.RateLimit.ResetAt.Time,
	}, nil
}

func nextCursor(info pageInfo) domain.Cursor {
	return domain.Cursor{After: string(info.EndCursor), HasNextPage: info.HasNextPage}
}

func rateLimitFromFields(f rateLimitFields) domain.RateLimit {
	return domain.RateLimit{
		Limit:     int(f.Limit),
		Cost:      int(f.Cost),
		Remaining: int(f.Remaining),
		ResetAt:   f.ResetAt.Time,
	}
}

// classifyError maps a client error onto the domain error kinds,
// keeping the underlying error in the chain.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, domain.ErrRateLimitExhausted),
		errors.Is(err, domain.ErrAuth),
		errors.Is(err, domain.ErrTransport),
		errors.Is(err, domain.ErrMalformedResponse):
		return err
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %w", domain.ErrRateLimitExhausted, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %w", domain.ErrRateLimitExhausted, err)
	case strings.Contains(msg, "bad credentials"), strings.Contains(msg, "401 unauthorized"):
		return fmt.Errorf("%w: %w", domain.ErrAuth, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
}
