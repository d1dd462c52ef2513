// Package report renders aggregated statistics for people and for other programs.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/naka-gawa/github-health/internal/domain"
)

const topN = 10

// Options controls the Markdown rendering of a Report.
type Options struct {
	// Commits adds the commits-in-merged-PRs ranking.
	Commits bool
}

// Period renders d the way a person would say it: minutes below an hour,
// hours up to two days, days beyond that. Values are truncated.
func Period(d time.Duration) string {
	hours := int64(d / time.Hour)
	switch {
	case hours > 48:
		return fmt.Sprintf("%d days", hours/24)
	case hours > 1:
		return fmt.Sprintf("%d hours", hours)
	case hours == 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%d minutes", int64(d/time.Minute))
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

func times(s *domain.Summary) (median, mean string) {
	if s == nil {
		return "None", "None"
	}
	return Period(s.MedianDuration()), Period(s.MeanDuration())
}

func writeTimes(b *strings.Builder, heading string, s *domain.Summary) {
	median, mean := times(s)
	fmt.Fprintf(b, "\n%s:\n- Median: %s\n- Average: %s\n", heading, median, mean)
}

func writeRanking(b *strings.Builder, heading string, r domain.Ranking) {
	fmt.Fprintf(b, "\n%s:\n", heading)
	top := r.Top(topN)
	if len(top) == 0 {
		b.WriteString("None\n")
		return
	}
	for i, e := range top {
		fmt.Fprintf(b, "%2d. %s: %d\n", i+1, e.Handle, e.Count)
	}
}

// Markdown renders r as a human readable report.
func Markdown(r *domain.Report, opts Options) string {
	var b strings.Builder

	title := strings.Join(r.Repositories, ", ")
	if title == "" {
		title = "(unnamed)"
	}
	fmt.Fprintf(&b, "# Project Report for %s\n", title)

	b.WriteString("\n## Issues\n")
	if r.AllIssues == 0 {
		b.WriteString("\nNo issues found.\n")
	} else {
		fmt.Fprintf(&b, "\n%d issues found, %d of which are now closed (%.1f%%).\n\n",
			r.AllIssues, r.AllClosedIssues, percent(r.AllClosedIssues, r.AllIssues))
		fmt.Fprintf(&b, "- %d (%.1f%%) of these received a response.\n",
			r.IssuesWithResponses, percent(r.IssuesWithResponses, r.AllIssues))
		fmt.Fprintf(&b, "- %d (%.1f%%) have an official response from a repo Owner or organization Member.\n",
			r.IssuesWithOfficialResponses, percent(r.IssuesWithOfficialResponses, r.AllIssues))
		writeTimes(&b, "Response Times (any)", r.IssueFirstRespTime)
		writeTimes(&b, "Response Times (official)", r.IssueOfficialFirstRespTime)
		writeTimes(&b, "Time-to-Close", r.IssueCloseTime)
	}

	b.WriteString("\n## Pull Requests\n")
	if r.AllPRs == 0 {
		b.WriteString("\nNo Pull Requests found.\n")
	} else {
		fmt.Fprintf(&b, "\n%d Pull Requests found, %d of which are now merged (%.1f%%).\n",
			r.AllPRs, r.PRsMerged, percent(r.PRsMerged, r.AllPRs))
		fmt.Fprintf(&b, "%d have been closed without merging (%.1f%%).\n\n",
			r.PRsClosedWithoutMerging, percent(r.PRsClosedWithoutMerging, r.AllPRs))
		fmt.Fprintf(&b, "- %d (%.1f%%) of these received a response.\n",
			r.PRsWithResponses, percent(r.PRsWithResponses, r.AllPRs))
		fmt.Fprintf(&b, "- %d (%.1f%%) have an official response from a repo Owner or organization Member.\n",
			r.PRsWithOfficialResponses, percent(r.PRsWithOfficialResponses, r.AllPRs))
		writeTimes(&b, "Response Times (any)", r.PRFirstRespTime)
		writeTimes(&b, "Response Times (official)", r.PROfficialFirstRespTime)
		writeTimes(&b, "Time-to-Close", r.PRCloseTime)
		writeTimes(&b, "Time-to-Merge", r.PRMergeTime)
	}

	b.WriteString("\n## Contributors\n")
	writeRanking(&b, "Top 10 Commentors (Issues and PRs)", r.Commentors)
	writeRanking(&b, "Top 10 Code Contributors (by merged PRs)", r.CodeContributors)
	if opts.Commits {
		writeRanking(&b, "Top 10 Code Contributors (by commits-in-merged-PRs)", r.ContributorCommits)
	}
	return b.String()
}

// WriteMarkdown writes the Markdown rendering of r to w.
func WriteMarkdown(w io.Writer, r *domain.Report, opts Options) error {
	_, err := io.WriteString(w, Markdown(r, opts))
	return err
}

// UsersMarkdown renders a location ranking.
func UsersMarkdown(r *domain.UserReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Most Active Users in %s\n\n", r.Location)
	fmt.Fprintf(&b, "%d users found in total; the %d most active are listed.\n\n", r.TotalUsers, len(r.Users))
	if len(r.Users) == 0 {
		b.WriteString("No users found.\n")
		return b.String()
	}
	b.WriteString("| # | User | Name | Followers | Public Contributions |\n")
	b.WriteString("|---|------|------|-----------|----------------------|\n")
	for i, u := range r.Users {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %d |\n", i+1, u.Login, u.Name, u.Followers, u.Contributions)
	}
	return b.String()
}

// RateLimitLine renders the remaining GraphQL quota.
func RateLimitLine(rl *domain.RateLimit) string {
	return fmt.Sprintf("%d/%d API points remaining, resets at %s.",
		rl.Remaining, rl.Limit, rl.ResetAt.UTC().Format(time.RFC3339))
}
