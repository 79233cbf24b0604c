package split

import (
	"math"

	"github.com/tripcrew/tripcrew/internal/money"
)

// EqualStrategy divides the total evenly among all participants. The last
// participant absorbs the rounding residual so the splits always sum exactly
// to the total.
type EqualStrategy struct{}

// Policy returns the policy identifier.
func (s *EqualStrategy) Policy() Policy {
	return PolicyEqual
}

// Validate checks the inputs for an equal split.
func (s *EqualStrategy) Validate(total money.Cents, participants []Input) error {
	return validateCommon(total, participants)
}

// Calculate gives every participant round(total/count); the last participant
// takes whatever remains instead, so no cent is lost or invented.
func (s *EqualStrategy) Calculate(total money.Cents, payerID int64, participants []Input) ([]Output, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	share := money.Cents(math.Round(float64(total) / float64(len(participants))))

	outputs := make([]Output, len(participants))
	var distributed money.Cents
	for i, p := range participants {
		amount := share
		if i == len(participants)-1 {
			amount = total - distributed
		}
		distributed += amount
		outputs[i] = Output{
			MemberID:   p.MemberID,
			AmountOwed: amount,
			Settled:    p.MemberID == payerID,
		}
	}

	return outputs, nil
}
