package ledger

import "github.com/tripcrew/tripcrew/internal/money"

// Transfer is one suggested peer-to-peer payment.
type Transfer struct {
	FromID int64       `json:"from_member_id"`
	ToID   int64       `json:"to_member_id"`
	Amount money.Cents `json:"amount"`
}

// ComputeSettlements suggests transfers that would zero out every balance.
//
// Greedy pairing: repeatedly match the largest remaining debtor with the
// largest remaining creditor and transfer min(debt, credit). This produces at
// most members-1 transfers and discharges every balance, but is a heuristic,
// not a minimum-transaction solver. Ties are broken by member id so the
// output is deterministic for identical input.
func ComputeSettlements(balances map[int64]*Balance) []Transfer {
	credit := make(map[int64]money.Cents)
	debt := make(map[int64]money.Cents)
	for id, b := range balances {
		switch {
		case b.Net > 0:
			credit[id] = b.Net
		case b.Net < 0:
			debt[id] = -b.Net
		}
	}

	var transfers []Transfer
	for len(credit) > 0 && len(debt) > 0 {
		creditorID := largest(credit)
		debtorID := largest(debt)

		amount := credit[creditorID]
		if debt[debtorID] < amount {
			amount = debt[debtorID]
		}

		transfers = append(transfers, Transfer{
			FromID: debtorID,
			ToID:   creditorID,
			Amount: amount,
		})

		credit[creditorID] -= amount
		debt[debtorID] -= amount
		if credit[creditorID] <= 0 {
			delete(credit, creditorID)
		}
		if debt[debtorID] <= 0 {
			delete(debt, debtorID)
		}
	}

	return transfers
}

// largest returns the key with the biggest amount, smallest id on ties.
func largest(amounts map[int64]money.Cents) int64 {
	var bestID int64
	var best money.Cents = -1
	for id, amount := range amounts {
		if amount > best || (amount == best && id < bestID) {
			bestID = id
			best = amount
		}
	}
	return bestID
}
