package split

import (
	"errors"
	"fmt"

	"github.com/tripcrew/tripcrew/internal/money"
)

// Policy identifies how an expense is divided among participants.
type Policy string

const (
	PolicyEqual      Policy = "EQUAL"
	PolicyPercentage Policy = "PERCENTAGE"
	PolicyCustom     Policy = "CUSTOM"
)

// Input is one participant in a split request.
type Input struct {
	MemberID   int64        `json:"member_id"`
	Percentage *float64     `json:"percentage,omitempty"` // PERCENTAGE policy
	Amount     *money.Cents `json:"amount,omitempty"`     // CUSTOM policy
}

// Output is the calculated obligation for a single participant. Every
// participant appears exactly once; the payer's own split is created settled
// because a member cannot owe themselves.
type Output struct {
	MemberID   int64       `json:"member_id"`
	AmountOwed money.Cents `json:"amount_owed"`
	Percentage *float64    `json:"percentage,omitempty"`
	Settled    bool        `json:"settled"`
}

// Strategy is the interface that all split policies implement.
type Strategy interface {
	// Calculate computes one split per participant.
	Calculate(total money.Cents, payerID int64, participants []Input) ([]Output, error)

	// Policy returns the identifier for this strategy.
	Policy() Policy

	// Validate checks the inputs without calculating.
	Validate(total money.Cents, participants []Input) error
}

// Factory creates split strategies by policy.
type Factory struct{}

// NewFactory creates a new strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given policy.
func (f *Factory) Create(policy Policy) (Strategy, error) {
	switch policy {
	case PolicyEqual:
		return &EqualStrategy{}, nil
	case PolicyPercentage:
		return &PercentageStrategy{}, nil
	case PolicyCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
}

// CreateFromString creates a strategy from a raw API value.
func (f *Factory) CreateFromString(policy string) (Strategy, error) {
	return f.Create(Policy(policy))
}

// Validation errors. Each rule that can fail has its own sentinel so the
// handler can surface the specific rule to the user.
var (
	ErrUnknownPolicy        = errors.New("unknown split policy")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNonPositiveTotal     = errors.New("total amount must be positive")
	ErrDuplicateParticipant = errors.New("participant appears more than once")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrPercentageSum        = errors.New("percentages must add up to 100%")
	ErrMissingAmount        = errors.New("amount required for all participants")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrAmountSum            = errors.New("amounts must add up to the total")
)

// IsValidationError reports whether err is one of the split validation
// sentinels, so handlers can distinguish bad input from storage failures.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrUnknownPolicy, ErrNoParticipants, ErrNonPositiveTotal,
		ErrDuplicateParticipant, ErrMissingPercentage, ErrPercentageOutOfRange,
		ErrPercentageSum, ErrMissingAmount, ErrNegativeAmount, ErrAmountSum,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// validateCommon applies the rules shared by every policy.
func validateCommon(total money.Cents, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if total <= 0 {
		return ErrNonPositiveTotal
	}
	seen := make(map[int64]bool, len(participants))
	for _, p := range participants {
		if seen[p.MemberID] {
			return fmt.Errorf("%w: member %d", ErrDuplicateParticipant, p.MemberID)
		}
		seen[p.MemberID] = true
	}
	return nil
}
