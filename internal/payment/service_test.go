package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/money"
)

type fakeStore struct {
	payments map[int64]*Payment
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{payments: make(map[int64]*Payment)}
}

func (f *fakeStore) Insert(_ context.Context, p *Payment) error {
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.payments[p.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ListByGroupID(_ context.Context, groupID int64) ([]*Payment, error) {
	var out []*Payment
	for _, p := range f.payments {
		if p.GroupID == groupID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByGroupAndCurrency(_ context.Context, groupID int64, currency string) ([]*Payment, error) {
	var out []*Payment
	for _, p := range f.payments {
		if p.GroupID == groupID && p.Currency == currency {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	delete(f.payments, id)
	return nil
}

func TestServiceRecord(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	p, err := svc.Record(context.Background(), 2, &RecordPaymentRequest{
		GroupID:    1,
		SenderID:   2,
		ReceiverID: 1,
		Amount:     33.33,
		Currency:   "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(3333), p.Amount)
	assert.Equal(t, int64(2), p.CreatedBy)
	assert.False(t, p.PaidAt.IsZero())
}

func TestServiceRecordRejectsSelfPayment(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	_, err := svc.Record(context.Background(), 1, &RecordPaymentRequest{
		GroupID:    1,
		SenderID:   1,
		ReceiverID: 1,
		Amount:     10.00,
		Currency:   "USD",
	})
	assert.ErrorIs(t, err, ErrSelfPayment)
}

func TestServiceRecordParsesPaidAt(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	paidAt := "2026-07-14T12:00:00Z"
	p, err := svc.Record(context.Background(), 2, &RecordPaymentRequest{
		GroupID:    1,
		SenderID:   2,
		ReceiverID: 1,
		Amount:     5.00,
		Currency:   "USD",
		PaidAt:     &paidAt,
	})
	require.NoError(t, err)
	assert.Equal(t, 2026, p.PaidAt.Year())

	bad := "yesterday"
	_, err = svc.Record(context.Background(), 2, &RecordPaymentRequest{
		GroupID:    1,
		SenderID:   2,
		ReceiverID: 1,
		Amount:     5.00,
		Currency:   "USD",
		PaidAt:     &bad,
	})
	assert.Error(t, err)
}

func TestServiceDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	p, err := svc.Record(context.Background(), 2, &RecordPaymentRequest{
		GroupID:    1,
		SenderID:   2,
		ReceiverID: 1,
		Amount:     12.00,
		Currency:   "USD",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID, 3)
	assert.ErrorIs(t, err, ErrNotRecorder)

	err = svc.Delete(context.Background(), p.ID, 2)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), p.ID, 2)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
