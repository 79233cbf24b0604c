package split

import "github.com/tripcrew/tripcrew/internal/money"

// CustomStrategy uses caller-supplied amounts directly. The amounts must sum
// to the total within one cent.
type CustomStrategy struct{}

// Policy returns the policy identifier.
func (s *CustomStrategy) Policy() Policy {
	return PolicyCustom
}

// Validate checks that every participant carries a non-negative amount and
// that the amounts sum to the total within tolerance.
func (s *CustomStrategy) Validate(total money.Cents, participants []Input) error {
	if err := validateCommon(total, participants); err != nil {
		return err
	}

	var sum money.Cents
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		sum += *p.Amount
	}

	if (sum - total).Abs() > 1 {
		return ErrAmountSum
	}
	return nil
}

// Calculate passes the supplied amounts through unchanged.
func (s *CustomStrategy) Calculate(total money.Cents, payerID int64, participants []Input) ([]Output, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	outputs := make([]Output, len(participants))
	for i, p := range participants {
		outputs[i] = Output{
			MemberID:   p.MemberID,
			AmountOwed: *p.Amount,
			Settled:    p.MemberID == payerID,
		}
	}

	return outputs, nil
}
