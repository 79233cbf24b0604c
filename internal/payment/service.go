package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tripcrew/tripcrew/internal/money"
)

// Common errors
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrSelfPayment     = errors.New("sender and receiver must be different members")
	ErrNotRecorder     = errors.New("only the member who recorded the payment can delete it")
)

// Store is the persistence surface the payment service needs
type Store interface {
	Insert(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	ListByGroupID(ctx context.Context, groupID int64) ([]*Payment, error)
	ListByGroupAndCurrency(ctx context.Context, groupID int64, currency string) ([]*Payment, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier lets the payment feature raise notifications without depending on
// the notification package directly.
type Notifier interface {
	PaymentRecorded(ctx context.Context, recipientID, paymentID int64, amount float64, currency string)
}

// Service handles payment business logic
type Service struct {
	store    Store
	notifier Notifier
}

// NewService creates a new payment service
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Record persists a repayment between two members. A payment is a single row,
// so no coordination is needed; it only adjusts balances at read time.
func (s *Service) Record(ctx context.Context, recorderID int64, req *RecordPaymentRequest) (*Payment, error) {
	if req.SenderID == req.ReceiverID {
		return nil, ErrSelfPayment
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return nil, errors.New("paid_at must be an RFC 3339 timestamp")
		}
		paidAt = parsed.UTC()
	}

	p := &Payment{
		GroupID:     req.GroupID,
		SenderID:    req.SenderID,
		ReceiverID:  req.ReceiverID,
		Amount:      money.FromFloat(req.Amount),
		Currency:    req.Currency,
		Description: req.Description,
		PaidAt:      paidAt,
		CreatedBy:   recorderID,
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}

	if s.notifier != nil && req.ReceiverID != recorderID {
		s.notifier.PaymentRecorded(ctx, req.ReceiverID, p.ID, req.Amount, req.Currency)
	}

	return p, nil
}

// GetByID retrieves a payment by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// ListByGroupID retrieves payments for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64) ([]*Payment, error) {
	return s.store.ListByGroupID(ctx, groupID)
}

// ListByGroupAndCurrency loads a snapshot of a group's payments in one
// currency, for the ledger.
func (s *Service) ListByGroupAndCurrency(ctx context.Context, groupID int64, currency string) ([]*Payment, error) {
	return s.store.ListByGroupAndCurrency(ctx, groupID, currency)
}

// Delete removes a payment recorded by the acting member
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPaymentNotFound
	}
	if p.CreatedBy != actorID {
		return ErrNotRecorder
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPaymentNotFound
		}
		return err
	}

	return nil
}
