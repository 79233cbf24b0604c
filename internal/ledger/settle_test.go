package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/money"
)

func balanceMap(nets map[int64]money.Cents) map[int64]*Balance {
	out := make(map[int64]*Balance, len(nets))
	for id, net := range nets {
		out[id] = &Balance{MemberID: id, Net: net, Settled: net == 0}
	}
	return out
}

// applyTransfers replays suggested transfers against the net balances.
func applyTransfers(nets map[int64]money.Cents, transfers []Transfer) map[int64]money.Cents {
	remaining := make(map[int64]money.Cents, len(nets))
	for id, net := range nets {
		remaining[id] = net
	}
	for _, tr := range transfers {
		remaining[tr.FromID] += tr.Amount
		remaining[tr.ToID] -= tr.Amount
	}
	return remaining
}

func TestComputeSettlementsScenario(t *testing.T) {
	// After a 100.00 three-way expense paid by member 1.
	nets := map[int64]money.Cents{1: 6667, 2: -3333, 3: -3334}

	transfers := ComputeSettlements(balanceMap(nets))
	require.Len(t, transfers, 2)

	// Largest debtor pays first; everything flows to member 1.
	assert.Equal(t, Transfer{FromID: 3, ToID: 1, Amount: 3334}, transfers[0])
	assert.Equal(t, Transfer{FromID: 2, ToID: 1, Amount: 3333}, transfers[1])

	var total money.Cents
	for _, tr := range transfers {
		assert.Equal(t, int64(1), tr.ToID)
		total += tr.Amount
	}
	assert.Equal(t, money.Cents(6667), total)
}

func TestComputeSettlementsDischargesAll(t *testing.T) {
	tests := []struct {
		name string
		nets map[int64]money.Cents
	}{
		{name: "one creditor", nets: map[int64]money.Cents{1: 6667, 2: -3333, 3: -3334}},
		{name: "two creditors", nets: map[int64]money.Cents{1: 5000, 2: 2500, 3: -2500, 4: -5000}},
		{name: "chain", nets: map[int64]money.Cents{1: 100, 2: 200, 3: 300, 4: -600}},
		{name: "all settled", nets: map[int64]money.Cents{1: 0, 2: 0}},
		{name: "single pair", nets: map[int64]money.Cents{1: 999, 2: -999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := ComputeSettlements(balanceMap(tt.nets))

			assert.LessOrEqual(t, len(transfers), len(tt.nets)-1)

			for id, remaining := range applyTransfers(tt.nets, transfers) {
				assert.Equal(t, money.Cents(0), remaining, "member %d not discharged", id)
			}
		})
	}
}

func TestComputeSettlementsDeterministic(t *testing.T) {
	nets := map[int64]money.Cents{1: 3000, 2: 3000, 3: -3000, 4: -3000}

	first := ComputeSettlements(balanceMap(nets))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeSettlements(balanceMap(nets)))
	}

	// Magnitude ties break toward the smaller member id.
	require.NotEmpty(t, first)
	assert.Equal(t, int64(3), first[0].FromID)
	assert.Equal(t, int64(1), first[0].ToID)
}

func TestComputeSettlementsEmpty(t *testing.T) {
	assert.Empty(t, ComputeSettlements(nil))
	assert.Empty(t, ComputeSettlements(balanceMap(map[int64]money.Cents{1: 0})))
}
