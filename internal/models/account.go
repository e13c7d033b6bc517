package models

// Account statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// Account is a shared expense: the creator paid TotalAmount and is owed
// ReceiveAmount by the other participants.
type Account struct {
	ID            int64         `json:"id"`
	GroupID       int64         `json:"groupId"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Date          string        `json:"date"`
	TotalAmount   Amount        `json:"totalAmount"`
	ReceiveAmount Amount        `json:"receiveAmount"`
	Status        string        `json:"status"`
	CreatedBy     int64         `json:"createdBy"`
	MemberLoginID string        `json:"memberLoginId"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	Participants  []Participant `json:"participants"`
	CreatedAt     string        `json:"createdAt"`
}

// Participant is one member's share of an account.
type Participant struct {
	MemberID  int64  `json:"memberId"`
	LoginID   string `json:"loginId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Amount    int64  `json:"amount"`
	Paid      bool   `json:"paid"`
}

// Completed reports whether the account is settled.
func (a *Account) Completed() bool {
	return a.Status == StatusCompleted
}

// Lookup implements ownership.Record. Owner fields are always present, so a
// blank login id is compared as blank rather than skipped.
func (a *Account) Lookup(field string) (any, bool) {
	if a == nil {
		return nil, false
	}
	switch field {
	case "id":
		return a.ID, true
	case "date":
		return a.Date, true
	case "createdAt":
		return a.CreatedAt, true
	case "memberLoginId":
		return a.MemberLoginID, true
	case "createdBy":
		return a.CreatedBy, true
	}
	return nil, false
}
