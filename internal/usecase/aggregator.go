// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/naka-gawa/github-health/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how the two collections of a repository are fetched.
type Strategy int

const (
	// StrategyConcurrent fetches Issues and Pull Requests at the same time.
	StrategyConcurrent Strategy = iota
	// StrategySerial fetches Issues, then Pull Requests, to go easier on the API.
	StrategySerial
)

func (s Strategy) String() string {
	if s == StrategySerial {
		return "serial"
	}
	return "concurrent"
}

// FetchOptions controls a repository fetch.
type FetchOptions struct {
	Window       domain.Window
	Strategy     Strategy `validate:"oneof=0 1"`
	TrackCommits bool
	// PageSize is the number of items per request; zero means the maximum.
	PageSize int `validate:"gte=0,lte=100"`
}

// ProgressFunc is told how many items of a collection have been processed so far.
// It may be called from several goroutines at once.
type ProgressFunc func(repo domain.RepoID, kind domain.Kind, processed int)

// Aggregator is the use case for aggregating GitHub stats.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher  gateway.Fetcher
	logger   *log.Logger
	validate *validator.Validate
	progress ProgressFunc
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		logger:   logger,
		validate: validator.New(),
	}
}

// OnProgress registers a progress callback.
func (a *Aggregator) OnProgress(fn ProgressFunc) {
	a.progress = fn
}

// Aggregate fetches every repository and merges them into one Report.
func (a *Aggregator) Aggregate(ctx context.Context, repos []domain.RepoID, opts FetchOptions) (*domain.Report, error) {
	tallies, err := a.FetchReports(ctx, repos, opts)
	if err != nil {
		return nil, err
	}
	list := make([]*RepoTally, 0, len(tallies))
	for _, t := range tallies {
		list = append(list, t)
	}
	report := Merge(list)
	a.logger.Println("Usecase: Aggregation complete.")
	return report, nil
}

// FetchReports fetches the Issue and Pull Request tallies of every repository.
// Repositories are fetched concurrently. The first failure cancels the
// remaining fetches and is the only thing returned; partial results are dropped.
func (a *Aggregator) FetchReports(ctx context.Context, repos []domain.RepoID, opts FetchOptions) (map[domain.RepoID]*RepoTally, error) {
	if len(repos) == 0 {
		return nil, fmt.Errorf("no repositories given")
	}
	if err := a.validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid fetch options: %w", err)
	}
	a.logger.Printf("Usecase: Fetching %d repositories (%s)...\n", len(repos), opts.Strategy)

	results := make([]*RepoTally, len(repos))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, repo := range repos {
		eg.Go(func() error {
			tally, err := a.fetchRepo(egCtx, repo, opts)
			if err != nil {
				return err
			}
			results[i] = tally
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	a.logger.Println("Usecase: All data fetched successfully.")

	out := make(map[domain.RepoID]*RepoTally, len(results))
	for _, t := range results {
		out[t.Repo] = t
	}
	return out, nil
}

func (a *Aggregator) fetchRepo(ctx context.Context, repo domain.RepoID, opts FetchOptions) (*RepoTally, error) {
	tally := &RepoTally{Repo: repo}

	if opts.Strategy == StrategySerial {
		var err error
		if tally.Issues, err = a.fetchCollection(ctx, repo, domain.KindIssues, opts); err != nil {
			return nil, err
		}
		if tally.PullRequests, err = a.fetchCollection(ctx, repo, domain.KindPullRequests, opts); err != nil {
			return nil, err
		}
		return tally, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		tally.Issues, err = a.fetchCollection(egCtx, repo, domain.KindIssues, opts)
		return err
	})
	eg.Go(func() error {
		var err error
		tally.PullRequests, err = a.fetchCollection(egCtx, repo, domain.KindPullRequests, opts)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return tally, nil
}

// fetchCollection runs one Pager to completion into its own Accumulator.
func (a *Aggregator) fetchCollection(ctx context.Context, repo domain.RepoID, kind domain.Kind, opts FetchOptions) (*Tally, error) {
	query := gateway.ItemQuery{Repo: repo, Kind: kind, PageSize: opts.PageSize}
	fetch := func(ctx context.Context, cursor domain.Cursor) (*domain.Page[domain.Item], error) {
		return a.fetcher.FetchItems(ctx, query, cursor)
	}
	window := opts.Window
	pager := NewPager(repo.String(), kind, fetch,
		WithFilter(func(item domain.Item) bool { return window.Contains(item.CreatedAt) }),
		// Items arrive newest first, so nothing after an item older than the window can match.
		WithStop(func(last domain.Item) bool { return window.Precedes(last.CreatedAt) }),
	)

	acc := NewAccumulator(kind)
	processed := 0
	for page, err := range pager.Pages(ctx) {
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			classified := Classify(item)
			if opts.TrackCommits && classified.Merged {
				n, err := a.fetcher.FetchCommitCount(ctx, repo, item.Number)
				if err != nil {
					return nil, &domain.FetchError{Target: repo.String(), Kind: kind, Err: err}
				}
				classified.Commits = n
			}
			if err := acc.Ingest(classified); err != nil {
				return nil, err
			}
		}
		processed += len(page.Items)
		if a.progress != nil {
			a.progress(repo, kind, processed)
		}
		a.logger.Printf("  %s %s: %d processed, %d/%d API points remaining\n",
			repo, kind, processed, page.RateLimit.Remaining, page.RateLimit.Limit)
	}
	a.logger.Printf("Completed fetching %s for %s.\n", kind, repo)
	return acc.Finalize(), nil
}
