package ledger

// BalanceResponse is one member's net position in major units
type BalanceResponse struct {
	MemberID int64   `json:"member_id"`
	Paid     float64 `json:"paid"`
	Owed     float64 `json:"owed"`
	Net      float64 `json:"net"`
	Settled  bool    `json:"settled"`
}

// BalancesResponse carries a group's balances in one currency
type BalancesResponse struct {
	GroupID  int64              `json:"group_id"`
	Currency string             `json:"currency"`
	Balances []*BalanceResponse `json:"balances"`
}

// TransferResponse is one suggested repayment in major units
type TransferResponse struct {
	FromMemberID int64   `json:"from_member_id"`
	ToMemberID   int64   `json:"to_member_id"`
	Amount       float64 `json:"amount"`
}

// SettlementsResponse carries a group's suggested transfers in one currency
type SettlementsResponse struct {
	GroupID   int64               `json:"group_id"`
	Currency  string              `json:"currency"`
	Transfers []*TransferResponse `json:"transfers"`
}

// ToResponse converts a Balance to its DTO
func (b *Balance) ToResponse() *BalanceResponse {
	return &BalanceResponse{
		MemberID: b.MemberID,
		Paid:     b.Paid.Float64(),
		Owed:     b.Owed.Float64(),
		Net:      b.Net.Float64(),
		Settled:  b.Settled,
	}
}

// ToResponse converts a Transfer to its DTO
func (t *Transfer) ToResponse() *TransferResponse {
	return &TransferResponse{
		FromMemberID: t.FromID,
		ToMemberID:   t.ToID,
		Amount:       t.Amount.Float64(),
	}
}
