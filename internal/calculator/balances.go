package calculator

import (
	"sort"

	"github.com/mmynk/housemate/internal/models"
)

// MemberBalance is one member's position across a group's open accounts.
type MemberBalance struct {
	MemberID   int64 `json:"memberId"`
	NetBalance int64 `json:"netBalance"` // Positive = owed money, Negative = owes money
	TotalPaid  int64 `json:"totalPaid"`
	TotalOwed  int64 `json:"totalOwed"`
}

// DebtEdge is a suggested payment from one member to another.
type DebtEdge struct {
	From   int64 `json:"from"`
	To     int64 `json:"to"`
	Amount int64 `json:"amount"`
}

// GroupBalances aggregates who is owed what over every pending account.
//
// Algorithm:
//   - the creator of a pending account is owed each unpaid participant share
//   - each unpaid participant owes their share
//   - net_balance = total_paid - total_owed
//   - edges: greedy matching of the largest debtor with the largest creditor
//
// Output is sorted by member id; edges come in matching order.
func GroupBalances(accounts []models.Account) ([]MemberBalance, []DebtEdge) {
	balances := make(map[int64]*MemberBalance)
	get := func(id int64) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{MemberID: id}
			balances[id] = b
		}
		return b
	}

	for _, account := range accounts {
		if account.Completed() || account.CreatedBy == 0 {
			continue
		}
		for _, p := range account.Participants {
			if p.Paid || p.MemberID == account.CreatedBy {
				continue
			}
			get(account.CreatedBy).TotalPaid += p.Amount
			get(p.MemberID).TotalOwed += p.Amount
		}
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, bal := range balances {
		bal.NetBalance = bal.TotalPaid - bal.TotalOwed
		memberBalances = append(memberBalances, *bal)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].MemberID < memberBalances[j].MemberID
	})

	return memberBalances, simplify(memberBalances)
}

// simplify matches debtors with creditors to minimize the number of payments.
func simplify(balances []MemberBalance) []DebtEdge {
	var creditors, debtors []MemberBalance
	for _, bal := range balances {
		if bal.NetBalance > 0 {
			creditors = append(creditors, bal)
		} else if bal.NetBalance < 0 {
			debtors = append(debtors, bal)
		}
	}
	// Largest amounts first; member id keeps ties stable.
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].NetBalance > creditors[j].NetBalance })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].NetBalance < debtors[j].NetBalance })

	owes := make([]int64, len(debtors))
	for i, d := range debtors {
		owes[i] = -d.NetBalance
	}
	owed := make([]int64, len(creditors))
	for i, c := range creditors {
		owed[i] = c.NetBalance
	}

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(owes[i], owed[j])
		if amount > 0 {
			edges = append(edges, DebtEdge{
				From:   debtors[i].MemberID,
				To:     creditors[j].MemberID,
				Amount: amount,
			})
		}
		owes[i] -= amount
		owed[j] -= amount
		if owes[i] == 0 {
			i++
		}
		if owed[j] == 0 {
			j++
		}
	}
	return edges
}
