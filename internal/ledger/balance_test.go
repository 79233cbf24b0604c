package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/money"
)

func threeWayExpense() []Expense {
	// 100.00 paid by member 1, split 33.33 / 33.33 / 33.34.
	return []Expense{{
		PayerID: 1,
		Amount:  10000,
		Splits: []Split{
			{MemberID: 1, AmountOwed: 3333},
			{MemberID: 2, AmountOwed: 3333},
			{MemberID: 3, AmountOwed: 3334},
		},
	}}
}

func TestComputeBalances(t *testing.T) {
	balances := ComputeBalances(threeWayExpense(), nil, []int64{1, 2, 3})
	require.Len(t, balances, 3)

	assert.Equal(t, money.Cents(10000), balances[1].Paid)
	assert.Equal(t, money.Cents(3333), balances[1].Owed)
	assert.Equal(t, money.Cents(6667), balances[1].Net)
	assert.Equal(t, money.Cents(-3333), balances[2].Net)
	assert.Equal(t, money.Cents(-3334), balances[3].Net)

	assert.False(t, balances[1].Settled)
	assert.False(t, balances[2].Settled)

	// Nets always sum to zero when splits sum to the expense total.
	var sum money.Cents
	for _, b := range balances {
		sum += b.Net
	}
	assert.Equal(t, money.Cents(0), sum)
}

func TestComputeBalancesPaymentDischargesDebt(t *testing.T) {
	payments := []Payment{{SenderID: 3, ReceiverID: 1, Amount: 3334}}

	balances := ComputeBalances(threeWayExpense(), payments, []int64{1, 2, 3})

	// The payment zeroes the sender without touching historical spend.
	assert.Equal(t, money.Cents(0), balances[3].Net)
	assert.True(t, balances[3].Settled)
	assert.Equal(t, money.Cents(3334), balances[3].Owed)
	assert.Equal(t, money.Cents(0), balances[3].Paid)

	assert.Equal(t, money.Cents(3333), balances[1].Net)
	assert.Equal(t, money.Cents(-3333), balances[2].Net)
}

func TestComputeBalancesIdempotent(t *testing.T) {
	expenses := threeWayExpense()
	payments := []Payment{{SenderID: 2, ReceiverID: 1, Amount: 1000}}
	members := []int64{1, 2, 3}

	first := ComputeBalances(expenses, payments, members)
	second := ComputeBalances(expenses, payments, members)
	assert.Equal(t, first, second)
}

func TestComputeBalancesInactiveMember(t *testing.T) {
	balances := ComputeBalances(threeWayExpense(), nil, []int64{1, 2, 3, 4})
	require.Contains(t, balances, int64(4))
	assert.Equal(t, money.Cents(0), balances[4].Net)
	assert.True(t, balances[4].Settled)
}

func TestComputeBalancesEmpty(t *testing.T) {
	balances := ComputeBalances(nil, nil, []int64{1, 2})
	assert.Len(t, balances, 2)
	for _, b := range balances {
		assert.True(t, b.Settled)
	}
}
