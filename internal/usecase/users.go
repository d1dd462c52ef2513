package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/naka-gawa/github-health/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const (
	userPageSize = 10
	// userMaxPages keeps the search within the 1000 results GitHub serves.
	userMaxPages = 1000 / userPageSize

	topByContributions = 500
	topByFollowers     = 250
	topUsers           = 100
)

// RankUsers finds the most active users of a location: the 500 top contributors
// among the most followed users, narrowed to the 250 most followed of those,
// then to the 100 top contributors.
func (a *Aggregator) RankUsers(ctx context.Context, location string) (*domain.UserReport, error) {
	if location == "" {
		return nil, fmt.Errorf("no location given")
	}
	a.logger.Printf("Usecase: Ranking users in %s...\n", location)

	var total int
	var users []domain.UserContribution

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := a.fetcher.FetchUserCount(egCtx, location)
		if err != nil {
			return &domain.FetchError{Target: location, Kind: domain.KindUsers, Err: err}
		}
		total = n
		return nil
	})
	eg.Go(func() error {
		query := gateway.UserQuery{Location: location, PageSize: userPageSize}
		fetch := func(ctx context.Context, cursor domain.Cursor) (*domain.Page[domain.UserContribution], error) {
			return a.fetcher.FetchUsers(ctx, query, cursor)
		}
		pager := NewPager(location, domain.KindUsers, fetch,
			// Results are sorted by followers, so a user without any ends the useful part.
			WithStop(func(last domain.UserContribution) bool { return last.Followers == 0 }),
			WithMaxPages[domain.UserContribution](userMaxPages),
		)
		for page, err := range pager.Pages(egCtx) {
			if err != nil {
				return err
			}
			users = append(users, page.Items...)
			if a.progress != nil {
				a.progress(domain.RepoID{}, domain.KindUsers, len(users))
			}
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &domain.UserReport{
		Location:   location,
		TotalUsers: total,
		Users:      rankUsers(users),
	}, nil
}

func rankUsers(users []domain.UserContribution) []domain.UserContribution {
	ranked := append([]domain.UserContribution(nil), users...)
	byContributions := func(i, j int) bool {
		if ranked[i].Contributions != ranked[j].Contributions {
			return ranked[i].Contributions > ranked[j].Contributions
		}
		return ranked[i].Login < ranked[j].Login
	}
	byFollowers := func(i, j int) bool {
		if ranked[i].Followers != ranked[j].Followers {
			return ranked[i].Followers > ranked[j].Followers
		}
		return ranked[i].Login < ranked[j].Login
	}

	sort.SliceStable(ranked, byContributions)
	ranked = ranked[:min(len(ranked), topByContributions)]
	sort.SliceStable(ranked, byFollowers)
	ranked = ranked[:min(len(ranked), topByFollowers)]
	sort.SliceStable(ranked, byContributions)
	return ranked[:min(len(ranked), topUsers)]
}
