// Package model defines the data structures used throughout the application.
package model

import "time"

// User is a linked GitHub account.
//
// GitHub's numeric user ID is stable and never changes, so its string form
// (github_id) is the linking key: the UNIQUE constraint guarantees one row
// per GitHub account. The internal uint ID stays ours — primary keys are
// never tied to a third party's numbering scheme.
//
// Profile fields mirror what GitHub's /user endpoint returns and may be
// empty when the user hides them. The zero string stands in for "absent";
// a nullable pointer buys nothing here.
//
// AccessToken is the opaque OAuth token from the most recent login. It is
// overwritten on every login, excluded from JSON, and never logged.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	GithubID    string    `json:"githubId" gorm:"uniqueIndex;not null"`
	Login       string    `json:"login" gorm:"not null"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatarUrl"`
	HTMLURL     string    `json:"htmlUrl"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Bio         string    `json:"bio"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
