package domain

// UserContribution is one user found by a location search.
type UserContribution struct {
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	Followers int    `json:"followers"`
	// Contributions excludes contributions to private repositories.
	Contributions int `json:"public_contributions"`
}

// UserReport ranks the most active users of a location.
type UserReport struct {
	Location   string             `json:"location"`
	TotalUsers int                `json:"total_users"`
	Users      []UserContribution `json:"contributions"`
}
