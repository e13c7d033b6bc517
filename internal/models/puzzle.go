package models

// Puzzle is an item on the shared calendar.
type Puzzle struct {
	ID            int64  `json:"id"`
	GroupID       int64  `json:"groupId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ScheduledDate string `json:"scheduledDate"`
	MemberLoginID string `json:"memberLoginId"`
	MemberID      int64  `json:"memberId"`
	Done          bool   `json:"done"`
	CreatedAt     string `json:"createdAt"`
}

// Lookup exposes the JSON-named fields the calendar and the ownership
// classifier read. Owner fields are always present, even when empty.
func (p *Puzzle) Lookup(field string) (any, bool) {
	if p == nil {
		return nil, false
	}
	switch field {
	case "id":
		return p.ID, true
	case "scheduledDate":
		return p.ScheduledDate, true
	case "createdAt":
		return p.CreatedAt, true
	case "memberLoginId":
		return p.MemberLoginID, true
	case "memberId":
		return p.MemberID, true
	}
	return nil, false
}
