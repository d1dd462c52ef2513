package usecase

import (
	"time"

	"github.com/naka-gawa/github-health/internal/domain"
)

// isSelf reports whether a comment was written by the item's own author.
// Deleted accounts are indistinguishable from each other, so a ghost is
// never treated as the author.
func isSelf(item domain.Item, c domain.Comment) bool {
	return c.Author == item.Author && c.Author != domain.GhostLogin
}

// firstResponse returns the delay until the earliest non-author comment
// accepted by match.
func firstResponse(item domain.Item, match func(domain.Comment) bool) *time.Duration {
	var first *time.Time
	for i := range item.Comments {
		c := item.Comments[i]
		if isSelf(item, c) || !match(c) {
			continue
		}
		if first == nil || c.CreatedAt.Before(*first) {
			first = &c.CreatedAt
		}
	}
	if first == nil {
		return nil
	}
	d := first.Sub(item.CreatedAt)
	return &d
}

func since(start time.Time, end *time.Time) *time.Duration {
	if end == nil {
		return nil
	}
	d := end.Sub(start)
	return &d
}

// Classify derives the timing facts and contributor credits of one item.
func Classify(item domain.Item) domain.ClassifiedItem {
	c := domain.ClassifiedItem{
		Kind:                  item.Kind,
		Number:                item.Number,
		Author:                item.Author,
		Closed:                item.ClosedAt != nil,
		FirstResponse:         firstResponse(item, func(domain.Comment) bool { return true }),
		FirstOfficialResponse: firstResponse(item, func(c domain.Comment) bool { return c.Official }),
		CloseTime:             since(item.CreatedAt, item.ClosedAt),
	}

	if item.Kind == domain.KindPullRequests && item.MergedAt != nil {
		c.Merged = true
		c.MergeTime = since(item.CreatedAt, item.MergedAt)
		c.CodeContributor = item.Author
	}

	seen := make(map[string]struct{}, len(item.Comments))
	for _, comment := range item.Comments {
		if isSelf(item, comment) {
			continue
		}
		if _, ok := seen[comment.Author]; ok {
			continue
		}
		seen[comment.Author] = struct{}{}
		c.Commentors = append(c.Commentors, comment.Author)
	}
	return c
}
