package models

import "time"

type Author struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// * CommitRecord is the normalized first commit handed to the card renderer.
// * Additions, Deletions and ChangedFiles are never negative.
type CommitRecord struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	CommittedAt  time.Time `json:"committedAt"`
	URL          string    `json:"url"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changedFiles"`
	Author       *Author   `json:"author"`
	BranchName   string    `json:"branchName,omitempty"`
}
