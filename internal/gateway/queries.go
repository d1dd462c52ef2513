package gateway

import "github.com/shurcooL/githubv4"

type pageInfo struct {
	HasNextPage bool
	EndCursor   githubv4.String
}

type rateLimitFields struct {
	Limit     githubv4.Int
	Cost      githubv4.Int
	Remaining githubv4.Int
	ResetAt   githubv4.DateTime
}

type actor struct {
	Login githubv4.String
}

type commentNode struct {
	Author            actor
	AuthorAssociation githubv4.CommentAuthorAssociation
	CreatedAt         githubv4.DateTime
}

type reviewNode struct {
	Author            actor
	AuthorAssociation githubv4.CommentAuthorAssociation
	// SubmittedAt is null for pending reviews.
	SubmittedAt *githubv4.DateTime
}

type issueNode struct {
	Number    githubv4.Int
	Author    actor
	CreatedAt githubv4.DateTime
	ClosedAt  *githubv4.DateTime
	Comments  struct {
		Nodes []commentNode
	} `graphql:"comments(first: 100)"`
}

type pullRequestNode struct {
	Number    githubv4.Int
	Author    actor
	CreatedAt githubv4.DateTime
	ClosedAt  *githubv4.DateTime
	MergedAt  *githubv4.DateTime
	Comments  struct {
		Nodes []commentNode
	} `graphql:"comments(first: 100)"`
	Reviews struct {
		Nodes []reviewNode
	} `graphql:"reviews(first: 100)"`
}

// issuesQuery pages through a repository's issues, newest first.
type issuesQuery struct {
	RateLimit  rateLimitFields
	Repository struct {
		Issues struct {
			PageInfo pageInfo
			Nodes    []issueNode
		} `graphql:"issues(first: $pageSize, after: $cursor, orderBy: {field: CREATED_AT, direction: DESC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// pullRequestsQuery pages through a repository's pull requests, newest first.
type pullRequestsQuery struct {
	RateLimit  rateLimitFields
	Repository struct {
		PullRequests struct {
			PageInfo pageInfo
			Nodes    []pullRequestNode
		} `graphql:"pullRequests(first: $pageSize, after: $cursor, orderBy: {field: CREATED_AT, direction: DESC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

type commitCountQuery struct {
	Repository struct {
		PullRequest struct {
			Commits struct {
				TotalCount githubv4.Int
			}
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// userSearchQuery finds users of a location, most followed first.
type userSearchQuery struct {
	RateLimit rateLimitFields
	Search    struct {
		PageInfo pageInfo
		Edges    []struct {
			Node struct {
				Typename string `graphql:"__typename"`
				User     struct {
					Login     githubv4.String
					Name      githubv4.String
					Followers struct {
						TotalCount githubv4.Int
					}
					ContributionsCollection struct {
						ContributionCalendar struct {
							TotalContributions githubv4.Int
						}
						RestrictedContributionsCount githubv4.Int
					}
				} `graphql:"... on User"`
			}
		}
	} `graphql:"search(query: $query, type: USER, first: $pageSize, after: $cursor)"`
}

type rateLimitQuery struct {
	RateLimit struct {
		Limit     githubv4.Int
		Remaining githubv4.Int
		ResetAt   githubv4.DateTime
	}
}
