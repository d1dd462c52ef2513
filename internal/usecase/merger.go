package usecase

import (
	"sort"

	"github.com/naka-gawa/github-health/internal/domain"
)

// pooled collects the union of several tallies of the same kind.
type pooled struct {
	counts            domain.Counts
	responses         domain.Sample
	officialResponses domain.Sample
	closeTimes        domain.Sample
	mergeTimes        domain.Sample
}

func (p *pooled) add(t *Tally) {
	if t == nil {
		return
	}
	p.counts = p.counts.Add(t.Counts)
	p.responses = append(p.responses, t.Responses...)
	p.officialResponses = append(p.officialResponses, t.OfficialResponses...)
	p.closeTimes = append(p.closeTimes, t.CloseTimes...)
	p.mergeTimes = append(p.mergeTimes, t.MergeTimes...)
}

// summarize sorts the pooled sample so the mean does not depend on tally order.
func summarize(s domain.Sample) *domain.Summary {
	sort.Float64s(s)
	return domain.Summarize(s)
}

// Merge combines per-repository tallies into one Report. Samples are pooled
// before summarizing, so medians describe the whole population rather than
// an average of per-repository medians. The result does not depend on the
// order of tallies.
func Merge(tallies []*RepoTally) *domain.Report {
	var issues, prs pooled
	report := &domain.Report{
		Repositories:       make([]string, 0, len(tallies)),
		Commentors:         domain.Ranking{},
		CodeContributors:   domain.Ranking{},
		ContributorCommits: domain.Ranking{},
	}

	for _, rt := range tallies {
		if rt == nil {
			continue
		}
		report.Repositories = append(report.Repositories, rt.Repo.String())
		for _, t := range []*Tally{rt.Issues, rt.PullRequests} {
			if t == nil {
				continue
			}
			report.Commentors.Merge(t.Commentors)
			report.CodeContributors.Merge(t.CodeContributors)
			report.ContributorCommits.Merge(t.ContributorCommits)
		}
		issues.add(rt.Issues)
		prs.add(rt.PullRequests)
	}
	sort.Strings(report.Repositories)

	report.AllIssues = issues.counts.Total
	report.AllClosedIssues = issues.counts.Closed
	report.IssuesWithResponses = issues.counts.WithResponse
	report.IssuesWithOfficialResponses = issues.counts.WithOfficialResponse
	report.IssueFirstRespTime = summarize(issues.responses)
	report.IssueOfficialFirstRespTime = summarize(issues.officialResponses)
	report.IssueCloseTime = summarize(issues.closeTimes)

	report.AllPRs = prs.counts.Total
	report.PRsMerged = prs.counts.Merged
	report.PRsClosedWithoutMerging = prs.counts.ClosedWithoutMerge
	report.PRsWithResponses = prs.counts.WithResponse
	report.PRsWithOfficialResponses = prs.counts.WithOfficialResponse
	report.PRFirstRespTime = summarize(prs.responses)
	report.PROfficialFirstRespTime = summarize(prs.officialResponses)
	report.PRCloseTime = summarize(prs.closeTimes)
	report.PRMergeTime = summarize(prs.mergeTimes)

	return report
}
