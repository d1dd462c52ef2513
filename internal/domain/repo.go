package domain

import (
	"fmt"
	"strings"
)

// RepoID identifies a GitHub repository by owner and name.
type RepoID struct {
	Owner string
	Name  string
}

// ParseRepoID parses an "owner/name" string.
func ParseRepoID(s string) (RepoID, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoID{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return RepoID{Owner: owner, Name: name}, nil
}

func (r RepoID) String() string {
	return r.Owner + "/" + r.Name
}

// Kind names a paged collection.
type Kind int

const (
	KindIssues Kind = iota
	KindPullRequests
	KindUsers
)

func (k Kind) String() string {
	switch k {
	case KindIssues:
		return "issues"
	case KindPullRequests:
		return "pull requests"
	case KindUsers:
		return "users"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
