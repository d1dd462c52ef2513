package gateway

import (
	"fmt"
	"time"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/shurcooL/githubv4"
)

func login(a actor) string {
	if a.Login == "" {
		return domain.GhostLogin
	}
	return string(a.Login)
}

func optionalTime(t *githubv4.DateTime) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func comment(a actor, assoc githubv4.CommentAuthorAssociation, at time.Time) domain.Comment {
	association := domain.Association(assoc)
	return domain.Comment{
		Author:      login(a),
		CreatedAt:   at,
		Association: association,
		Official:    association.IsOfficial(),
	}
}

func commentsFromNodes(kind domain.Kind, number int, nodes []commentNode) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0, len(nodes))
	for _, n := range nodes {
		if n.CreatedAt.IsZero() {
			return nil, fmt.Errorf("%w: comment on %s #%d has no creation time", domain.ErrMalformedResponse, kind, number)
		}
		comments = append(comments, comment(n.Author, n.AuthorAssociation, n.CreatedAt.Time))
	}
	return comments, nil
}

func issueFromNode(n issueNode) (domain.Item, error) {
	number := int(n.Number)
	if n.CreatedAt.IsZero() {
		return domain.Item{}, fmt.Errorf("%w: issue #%d has no creation time", domain.ErrMalformedResponse, number)
	}
	comments, err := commentsFromNodes(domain.KindIssues, number, n.Comments.Nodes)
	if err != nil {
		return domain.Item{}, err
	}
	return domain.Item{
		Kind:      domain.KindIssues,
		Number:    number,
		Author:    login(n.Author),
		CreatedAt: n.CreatedAt.Time,
		ClosedAt:  optionalTime(n.ClosedAt),
		Comments:  comments,
	}, nil
}

func pullRequestFromNode(n pullRequestNode) (domain.Item, error) {
	number := int(n.Number)
	if n.CreatedAt.IsZero() {
		return domain.Item{}, fmt.Errorf("%w: pull request #%d has no creation time", domain.ErrMalformedResponse, number)
	}
	comments, err := commentsFromNodes(domain.KindPullRequests, number, n.Comments.Nodes)
	if err != nil {
		return domain.Item{}, err
	}
	reviews := make([]domain.Comment, 0, len(n.Reviews.Nodes))
	for _, r := range n.Reviews.Nodes {
		if r.SubmittedAt == nil || r.SubmittedAt.IsZero() {
			continue
		}
		reviews = append(reviews, comment(r.Author, r.AuthorAssociation, r.SubmittedAt.Time))
	}
	return domain.Item{
		Kind:      domain.KindPullRequests,
		Number:    number,
		Author:    login(n.Author),
		CreatedAt: n.CreatedAt.Time,
		ClosedAt:  optionalTime(n.ClosedAt),
		MergedAt:  optionalTime(n.MergedAt),
		Comments:  interleave(comments, reviews),
	}, nil
}

// interleave merges two chronologically ordered streams without reordering
// either of them. On equal timestamps the comment comes first.
func interleave(comments, reviews []domain.Comment) []domain.Comment {
	if len(reviews) == 0 {
		return comments
	}
	out := make([]domain.Comment, 0, len(comments)+len(reviews))
	i, j := 0, 0
	for i < len(comments) && j < len(reviews) {
		if reviews[j].CreatedAt.Before(comments[i].CreatedAt) {
			out = append(out, reviews[j])
			j++
		} else {
			out = append(out, comments[i])
			i++
		}
	}
	out = append(out, comments[i:]...)
	return append(out, reviews[j:]...)
}
