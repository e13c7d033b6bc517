package models

// Group is a household. Members join with the invite code.
type Group struct {
	ID         int64    `json:"groupId"`
	Name       string   `json:"name"`
	InviteCode string   `json:"inviteCode"`
	Members    []Member `json:"members"`
	CreatedAt  string   `json:"createdAt"`
}

// MemberIDs returns the ids of every member.
func (g *Group) MemberIDs() []int64 {
	ids := make([]int64, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID int64) bool {
	for _, m := range g.Members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

// Rulebook is one entry on the house rules board.
type Rulebook struct {
	ID        int64  `json:"id"`
	GroupID   int64  `json:"groupId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedBy int64  `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// ChatMessage is one message in the group chat.
type ChatMessage struct {
	ID            int64  `json:"id"`
	GroupID       int64  `json:"groupId"`
	SenderID      int64  `json:"senderId"`
	SenderLoginID string `json:"senderLoginId"`
	Content       string `json:"content"`
	CreatedAt     string `json:"createdAt"`
}

// Notification types.
const (
	NotifyPuzzleCreated  = "PUZZLE_CREATED"
	NotifyAccountCreated = "ACCOUNT_CREATED"
	NotifyAccountPaid    = "ACCOUNT_PAID"
)

// Notification is a notice addressed to one member.
type Notification struct {
	ID         int64  `json:"id"`
	MemberID   int64  `json:"memberId"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	ResourceID int64  `json:"resourceId"`
	Read       bool   `json:"read"`
	CreatedAt  string `json:"createdAt"`
}
