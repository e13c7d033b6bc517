package calculator

import (
	"fmt"

	"github.com/mmynk/housemate/internal/models"
)

// SplitEvenly divides total won into n whole-won shares that add up to total.
// The remainder goes one won at a time to the first shares.
func SplitEvenly(total int64, n int) ([]int64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if total < 0 {
		return nil, fmt.Errorf("total cannot be negative")
	}

	shares := make([]int64, n)
	base := total / int64(n)
	rem := total % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares, nil
}

// ApplySplit fills every participant's share of the account total and sets
// ReceiveAmount to what the creator gets back from everyone else.
// The creator's own share is marked paid.
func ApplySplit(account *models.Account) error {
	if !account.TotalAmount.Valid {
		return fmt.Errorf("total amount is required")
	}
	shares, err := SplitEvenly(account.TotalAmount.Value, len(account.Participants))
	if err != nil {
		return err
	}

	receive := account.TotalAmount.Value
	for i := range account.Participants {
		p := &account.Participants[i]
		p.Amount = shares[i]
		if p.MemberID == account.CreatedBy {
			p.Paid = true
			receive -= shares[i]
		}
	}
	account.ReceiveAmount = models.Won(receive)
	return nil
}
