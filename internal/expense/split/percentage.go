package split

import (
	"math"

	"github.com/tripcrew/tripcrew/internal/money"
)

// PercentageStrategy divides the total by caller-supplied percentages.
//
// Each share is rounded independently; the sum can drift from the total by a
// cent and no residual is redistributed. Callers that need an exact sum use
// the custom policy.
type PercentageStrategy struct{}

// Policy returns the policy identifier.
func (s *PercentageStrategy) Policy() Policy {
	return PolicyPercentage
}

// Validate checks that every participant carries a percentage in [0, 100]
// and that the percentages sum to 100 within tolerance.
func (s *PercentageStrategy) Validate(total money.Cents, participants []Input) error {
	if err := validateCommon(total, participants); err != nil {
		return err
	}

	var sum float64
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		sum += *p.Percentage
	}

	if math.Abs(sum-100) > money.Tolerance {
		return ErrPercentageSum
	}
	return nil
}

// Calculate computes round(total * percentage / 100) per participant.
func (s *PercentageStrategy) Calculate(total money.Cents, payerID int64, participants []Input) ([]Output, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	outputs := make([]Output, len(participants))
	for i, p := range participants {
		pct := *p.Percentage
		outputs[i] = Output{
			MemberID:   p.MemberID,
			AmountOwed: money.Cents(math.Round(float64(total) * pct / 100)),
			Percentage: &pct,
			Settled:    p.MemberID == payerID,
		}
	}

	return outputs, nil
}
