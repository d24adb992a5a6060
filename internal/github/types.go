package github

import "time"

type Repository struct {
	Name           string
	Owner          string
	OwnerAvatarURL string
	DefaultBranch  string
	CreatedAt      time.Time
}

type User struct {
	Login     string
	Name      string
	AvatarURL string
}

// * One page of a branch history, newest commit first.
// * EndCursor is empty when GitHub did not return one.
type CommitHistoryPage struct {
	BranchName string
	Nodes      []*HistoryNode
	TotalCount int
	EndCursor  string
}

type HistoryNode struct {
	OID                     string    `json:"oid"`
	Message                 string    `json:"message"`
	CommittedDate           time.Time `json:"committedDate"`
	CommitURL               string    `json:"commitUrl"`
	Additions               *int      `json:"additions"`
	Deletions               *int      `json:"deletions"`
	ChangedFilesIfAvailable *int      `json:"changedFilesIfAvailable"`
	Author                  *GitActor `json:"author"`
}

type GitActor struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// * Oldest commit returned by the commit search API; it carries no diff statistics
type SearchCommit struct {
	SHA             string
	Message         string
	HTMLURL         string
	CommittedAt     time.Time
	AuthorName      string
	AuthorAvatarURL string
	RepositoryOwner string
	RepositoryName  string
}

type CommitStats struct {
	Additions    int
	Deletions    int
	ChangedFiles int
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type historyResponse struct {
	Data *struct {
		Repository *struct {
			DefaultBranchRef *struct {
				Name   string `json:"name"`
				Target *struct {
					History *struct {
						Nodes      []*HistoryNode `json:"nodes"`
						TotalCount int            `json:"totalCount"`
						PageInfo   struct {
							EndCursor *string `json:"endCursor"`
						} `json:"pageInfo"`
					} `json:"history"`
				} `json:"target"`
			} `json:"defaultBranchRef"`
		} `json:"repository"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
