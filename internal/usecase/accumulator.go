package usecase

import (
	"fmt"

	"github.com/naka-gawa/github-health/internal/domain"
)

// Accumulator folds classified items of one collection of one repository
// into counts, samples and rankings. It is owned by a single goroutine.
type Accumulator struct {
	kind   domain.Kind
	frozen bool

	counts            domain.Counts
	responses         domain.Sample
	officialResponses domain.Sample
	closeTimes        domain.Sample
	mergeTimes        domain.Sample

	commentors         domain.Ranking
	codeContributors   domain.Ranking
	contributorCommits domain.Ranking
}

// NewAccumulator creates an empty Accumulator for kind.
func NewAccumulator(kind domain.Kind) *Accumulator {
	return &Accumulator{
		kind:               kind,
		commentors:         domain.Ranking{},
		codeContributors:   domain.Ranking{},
		contributorCommits: domain.Ranking{},
	}
}

// Ingest adds one classified item. It fails once the Accumulator is finalized.
func (a *Accumulator) Ingest(c domain.ClassifiedItem) error {
	if a.frozen {
		return fmt.Errorf("cannot ingest %s #%d: %w", c.Kind, c.Number, domain.ErrAccumulatorFrozen)
	}
	if c.Kind != a.kind {
		return fmt.Errorf("cannot ingest %s #%d into %s accumulator", c.Kind, c.Number, a.kind)
	}

	a.counts.Total++
	if c.Closed {
		a.counts.Closed++
	}
	if c.Merged {
		a.counts.Merged++
	} else if c.Closed && a.kind == domain.KindPullRequests {
		a.counts.ClosedWithoutMerge++
	}

	if c.FirstResponse != nil {
		a.counts.WithResponse++
		a.responses.AddDuration(*c.FirstResponse)
	}
	if c.FirstOfficialResponse != nil {
		a.counts.WithOfficialResponse++
		a.officialResponses.AddDuration(*c.FirstOfficialResponse)
	}
	if c.CloseTime != nil {
		a.closeTimes.AddDuration(*c.CloseTime)
	}
	if c.MergeTime != nil {
		a.mergeTimes.AddDuration(*c.MergeTime)
	}

	for _, handle := range c.Commentors {
		a.commentors.Add(handle, 1)
	}
	if c.CodeContributor != "" {
		a.codeContributors.Add(c.CodeContributor, 1)
		if c.Commits > 0 {
			a.contributorCommits.Add(c.CodeContributor, c.Commits)
		}
	}
	return nil
}

// Finalize freezes the Accumulator and returns its read-only result.
func (a *Accumulator) Finalize() *Tally {
	a.frozen = true
	return &Tally{
		Kind:               a.kind,
		Counts:             a.counts,
		Responses:          a.responses,
		OfficialResponses:  a.officialResponses,
		CloseTimes:         a.closeTimes,
		MergeTimes:         a.mergeTimes,
		Commentors:         a.commentors,
		CodeContributors:   a.codeContributors,
		ContributorCommits: a.contributorCommits,
	}
}

// Tally is a finalized Accumulator. It must not be modified.
type Tally struct {
	Kind   domain.Kind
	Counts domain.Counts

	Responses         domain.Sample
	OfficialResponses domain.Sample
	CloseTimes        domain.Sample
	MergeTimes        domain.Sample

	Commentors         domain.Ranking
	CodeContributors   domain.Ranking
	ContributorCommits domain.Ranking
}

// RepoTally pairs the Issue and Pull Request tallies of one repository.
type RepoTally struct {
	Repo         domain.RepoID
	Issues       *Tally
	PullRequests *Tally
}
