package domain

import "time"

// GhostLogin stands in for accounts that have since been deleted.
const GhostLogin = "@ghost"

// Association is the relationship of a comment author to the repository,
// as reported by the GraphQL authorAssociation field.
type Association string

const (
	AssociationOwner        Association = "OWNER"
	AssociationMember       Association = "MEMBER"
	AssociationCollaborator Association = "COLLABORATOR"
	AssociationContributor  Association = "CONTRIBUTOR"
	AssociationAuthor       Association = "AUTHOR"
	AssociationNone         Association = "NONE"
)

// IsOfficial reports whether the association counts as an official response.
func (a Association) IsOfficial() bool {
	return a == AssociationOwner || a == AssociationMember
}

// Comment is a single comment or review on an Issue or Pull Request.
type Comment struct {
	Author      string
	CreatedAt   time.Time
	Association Association
	Official    bool
}

// Item is an Issue or a Pull Request. MergedAt is only ever set for pull requests.
// Comments keep the order the API delivered them in.
type Item struct {
	Kind      Kind
	Number    int
	Author    string
	CreatedAt time.Time
	ClosedAt  *time.Time
	MergedAt  *time.Time
	Comments  []Comment
}

// ClassifiedItem holds the timing facts and credits derived from one Item.
type ClassifiedItem struct {
	Kind                  Kind
	Number                int
	Author                string
	Closed                bool
	Merged                bool
	FirstResponse         *time.Duration
	FirstOfficialResponse *time.Duration
	CloseTime             *time.Duration
	MergeTime             *time.Duration
	// Commentors lists each distinct non-author commentor once.
	Commentors []string
	// CodeContributor is the author of a merged pull request, empty otherwise.
	CodeContributor string
	// Commits is the number of commits in a merged pull request, when tracked.
	Commits int
}
