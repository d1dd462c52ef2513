// Package domain contains the core data structures and domain logic for the application.
package domain

// Counts are the running tallies of one collection.
type Counts struct {
	Total                int
	Closed               int
	Merged               int
	ClosedWithoutMerge   int
	WithResponse         int
	WithOfficialResponse int
}

// Add returns the key-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Total:                c.Total + o.Total,
		Closed:               c.Closed + o.Closed,
		Merged:               c.Merged + o.Merged,
		ClosedWithoutMerge:   c.ClosedWithoutMerge + o.ClosedWithoutMerge,
		WithResponse:         c.WithResponse + o.WithResponse,
		WithOfficialResponse: c.WithOfficialResponse + o.WithOfficialResponse,
	}
}

// Report holds the statistics of one or more repositories.
// It is also the JSON interchange format written by `repo --json`.
type Report struct {
	Repositories []string `json:"repositories,omitempty"`

	// Commentors counts, per user, the issues and PRs they commented on.
	Commentors Ranking `json:"commentors"`
	// CodeContributors counts merged PRs per author.
	CodeContributors Ranking `json:"code_contributors"`
	// ContributorCommits counts commits in merged PRs per author.
	ContributorCommits Ranking `json:"contributor_commits"`

	AllIssues                   int      `json:"all_issues"`
	AllClosedIssues             int      `json:"all_closed_issues"`
	IssuesWithResponses         int      `json:"issues_with_responses"`
	IssuesWithOfficialResponses int      `json:"issues_with_official_responses"`
	IssueFirstRespTime          *Summary `json:"issue_first_resp_time"`
	IssueOfficialFirstRespTime  *Summary `json:"issue_official_first_resp_time"`
	IssueCloseTime              *Summary `json:"issue_close_time"`

	AllPRs                   int      `json:"all_prs"`
	PRsMerged                int      `json:"prs_merged"`
	PRsClosedWithoutMerging  int      `json:"prs_closed_without_merging"`
	PRsWithResponses         int      `json:"prs_with_responses"`
	PRsWithOfficialResponses int      `json:"prs_with_official_responses"`
	PRFirstRespTime          *Summary `json:"pr_first_resp_time"`
	PROfficialFirstRespTime  *Summary `json:"pr_official_first_resp_time"`
	PRCloseTime              *Summary `json:"pr_close_time"`
	PRMergeTime              *Summary `json:"pr_merge_time"`
}
