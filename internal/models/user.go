package models

import "time"

// Member is a registered user. LoginID is what the app shows and what
// ownership checks compare against.
type Member struct {
	ID           int64  `json:"memberId"`
	LoginID      string `json:"loginId"`
	DisplayName  string `json:"name"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	GroupID      int64  `json:"groupId,omitempty"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// NewMember creates a member with timestamps set. The store assigns ID.
func NewMember(loginID, displayName, passwordHash string) *Member {
	now := Now()
	return &Member{
		LoginID:      loginID,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Now is the canonical timestamp format for every record.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
