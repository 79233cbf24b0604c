package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/money"
)

func pctPtr(v float64) *float64 { return &v }

func centsPtr(v money.Cents) *money.Cents { return &v }

func inputs(ids ...int64) []Input {
	out := make([]Input, len(ids))
	for i, id := range ids {
		out[i] = Input{MemberID: id}
	}
	return out
}

func sumOwed(outputs []Output) money.Cents {
	var sum money.Cents
	for _, o := range outputs {
		sum += o.AmountOwed
	}
	return sum
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, policy := range []Policy{PolicyEqual, PolicyPercentage, PolicyCustom} {
		s, err := f.Create(policy)
		require.NoError(t, err)
		assert.Equal(t, policy, s.Policy())
	}

	_, err := f.CreateFromString("HALFSIES")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestEqualSplit(t *testing.T) {
	s := &EqualStrategy{}

	tests := []struct {
		name    string
		total   money.Cents
		payerID int64
		parts   []Input
		wantErr error
	}{
		{name: "two way", total: 5000, payerID: 1, parts: inputs(1, 2)},
		{name: "three way with residual", total: 10000, payerID: 1, parts: inputs(1, 2, 3)},
		{name: "seven way", total: 10001, payerID: 4, parts: inputs(1, 2, 3, 4, 5, 6, 7)},
		{name: "single participant", total: 1234, payerID: 1, parts: inputs(1)},
		{name: "no participants", total: 5000, payerID: 1, parts: nil, wantErr: ErrNoParticipants},
		{name: "zero total", total: 0, payerID: 1, parts: inputs(1, 2), wantErr: ErrNonPositiveTotal},
		{name: "negative total", total: -100, payerID: 1, parts: inputs(1, 2), wantErr: ErrNonPositiveTotal},
		{name: "duplicate participant", total: 5000, payerID: 1, parts: inputs(1, 2, 2), wantErr: ErrDuplicateParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs, err := s.Calculate(tt.total, tt.payerID, tt.parts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, outputs, len(tt.parts))

			// Splits always sum exactly to the total.
			assert.Equal(t, tt.total, sumOwed(outputs))

			for _, o := range outputs {
				assert.Nil(t, o.Percentage)
				assert.Equal(t, o.MemberID == tt.payerID, o.Settled)
			}
		})
	}
}

func TestEqualSplitScenario(t *testing.T) {
	// 100.00 split three ways: shares of 33.33 with one participant
	// absorbing the extra cent.
	s := &EqualStrategy{}
	outputs, err := s.Calculate(10000, 1, inputs(1, 2, 3))
	require.NoError(t, err)

	assert.Equal(t, money.Cents(3333), outputs[0].AmountOwed)
	assert.Equal(t, money.Cents(3333), outputs[1].AmountOwed)
	assert.Equal(t, money.Cents(3334), outputs[2].AmountOwed)
	assert.True(t, outputs[0].Settled)
	assert.False(t, outputs[1].Settled)
}

func TestPercentageSplit(t *testing.T) {
	s := &PercentageStrategy{}

	t.Run("60/40", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Percentage: pctPtr(60)},
			{MemberID: 2, Percentage: pctPtr(40)},
		}
		outputs, err := s.Calculate(20000, 1, parts)
		require.NoError(t, err)
		require.Len(t, outputs, 2)

		assert.Equal(t, money.Cents(12000), outputs[0].AmountOwed)
		assert.Equal(t, money.Cents(8000), outputs[1].AmountOwed)
		require.NotNil(t, outputs[0].Percentage)
		assert.Equal(t, 60.0, *outputs[0].Percentage)
		assert.True(t, outputs[0].Settled)
	})

	t.Run("sum not 100 rejected", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Percentage: pctPtr(60)},
			{MemberID: 2, Percentage: pctPtr(30)},
		}
		_, err := s.Calculate(20000, 1, parts)
		assert.ErrorIs(t, err, ErrPercentageSum)
	})

	t.Run("sum within tolerance accepted", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Percentage: pctPtr(33.33)},
			{MemberID: 2, Percentage: pctPtr(33.33)},
			{MemberID: 3, Percentage: pctPtr(33.33)},
		}
		outputs, err := s.Calculate(30000, 1, parts)
		require.NoError(t, err)
		// Independent rounding: the sum may drift from the total.
		assert.InDelta(t, 30000, float64(sumOwed(outputs)), 3)
	})

	t.Run("missing percentage", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Percentage: pctPtr(100)},
			{MemberID: 2},
		}
		_, err := s.Calculate(20000, 1, parts)
		assert.ErrorIs(t, err, ErrMissingPercentage)
	})

	t.Run("percentage out of range", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Percentage: pctPtr(150)},
			{MemberID: 2, Percentage: pctPtr(-50)},
		}
		_, err := s.Calculate(20000, 1, parts)
		assert.ErrorIs(t, err, ErrPercentageOutOfRange)
	})
}

func TestCustomSplit(t *testing.T) {
	s := &CustomStrategy{}

	t.Run("amounts pass through", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Amount: centsPtr(1500)},
			{MemberID: 2, Amount: centsPtr(3500)},
		}
		outputs, err := s.Calculate(5000, 2, parts)
		require.NoError(t, err)

		assert.Equal(t, money.Cents(1500), outputs[0].AmountOwed)
		assert.Equal(t, money.Cents(3500), outputs[1].AmountOwed)
		assert.False(t, outputs[0].Settled)
		assert.True(t, outputs[1].Settled)
		assert.Nil(t, outputs[0].Percentage)
	})

	t.Run("one cent off accepted", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Amount: centsPtr(2500)},
			{MemberID: 2, Amount: centsPtr(2499)},
		}
		_, err := s.Calculate(5000, 1, parts)
		assert.NoError(t, err)
	})

	t.Run("sum mismatch rejected", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Amount: centsPtr(1000)},
			{MemberID: 2, Amount: centsPtr(1000)},
		}
		_, err := s.Calculate(5000, 1, parts)
		assert.ErrorIs(t, err, ErrAmountSum)
	})

	t.Run("negative amount", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Amount: centsPtr(6000)},
			{MemberID: 2, Amount: centsPtr(-1000)},
		}
		_, err := s.Calculate(5000, 1, parts)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("missing amount", func(t *testing.T) {
		parts := []Input{
			{MemberID: 1, Amount: centsPtr(5000)},
			{MemberID: 2},
		}
		_, err := s.Calculate(5000, 1, parts)
		assert.ErrorIs(t, err, ErrMissingAmount)
	})
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrPercentageSum))
	assert.True(t, IsValidationError(ErrNoParticipants))
	assert.False(t, IsValidationError(assert.AnError))
}
