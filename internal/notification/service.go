package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotificationNotFound is returned when a notification does not exist or
// belongs to another member
var ErrNotificationNotFound = errors.New("notification not found")

// Store is the persistence surface the notification service needs
type Store interface {
	Insert(ctx context.Context, n *Notification) error
	ListByMemberID(ctx context.Context, memberID int64, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, id, memberID int64) (*Notification, error)
	MarkAllRead(ctx context.Context, memberID int64) error
}

// Service handles notification business logic. It also satisfies the Notifier
// interfaces of the group, expense and payment features: those emit on a
// best-effort basis, so the emit helpers log failures instead of returning
// them.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a new notification service
func NewService(store Store) *Service {
	return &Service{store: store, log: slog.Default()}
}

// ListByMemberID retrieves a member's notifications
func (s *Service) ListByMemberID(ctx context.Context, memberID int64, unreadOnly bool) ([]*Notification, error) {
	return s.store.ListByMemberID(ctx, memberID, unreadOnly)
}

// MarkRead marks one of a member's notifications as read
func (s *Service) MarkRead(ctx context.Context, id, memberID int64) (*Notification, error) {
	n, err := s.store.MarkRead(ctx, id, memberID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}
	return n, nil
}

// MarkAllRead marks all of a member's notifications as read
func (s *Service) MarkAllRead(ctx context.Context, memberID int64) error {
	return s.store.MarkAllRead(ctx, memberID)
}

// ExpenseAdded notifies a member that they owe a share of a new expense
func (s *Service) ExpenseAdded(ctx context.Context, recipientID, expenseID int64, description string) {
	s.emit(ctx, recipientID, fmt.Sprintf("You were added to the expense %q", description), EntityExpense, expenseID)
}

// PaymentRecorded notifies a member that a repayment to them was recorded
func (s *Service) PaymentRecorded(ctx context.Context, recipientID, paymentID int64, amount float64, currency string) {
	s.emit(ctx, recipientID, fmt.Sprintf("A payment of %.2f %s to you was recorded", amount, currency), EntityPayment, paymentID)
}

// GroupInvite notifies a member that they were invited to a group
func (s *Service) GroupInvite(ctx context.Context, recipientID int64, groupName string, groupID int64) {
	s.emit(ctx, recipientID, fmt.Sprintf("You were invited to join %q", groupName), EntityGroup, groupID)
}

func (s *Service) emit(ctx context.Context, memberID int64, message, entityType string, entityID int64) {
	n := &Notification{
		MemberID:   memberID,
		Message:    message,
		EntityType: &entityType,
		EntityID:   &entityID,
	}
	if err := s.store.Insert(ctx, n); err != nil {
		s.log.Error("failed to create notification",
			"member_id", memberID,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	}
}
