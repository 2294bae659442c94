package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vino121095/valenmart-storefront/internal/statuslog"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

type stubUpdater struct {
	calls int
	got   entity.Status
	err   error
}

func (s *stubUpdater) UpdateOrderStatus(_ context.Context, orderID string, status entity.Status) (*entity.Order, error) {
	s.calls++
	s.got = status
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Order{ID: orderID, Status: string(status)}, nil
}

type memLog struct {
	entries []statuslog.Entry
}

func (m *memLog) Save(_ context.Context, e *statuslog.Entry) error {
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memLog) ListByOrder(_ context.Context, orderID string) ([]statuslog.Entry, error) {
	var out []statuslog.Entry
	for _, e := range m.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestMarkDelivered(t *testing.T) {
	up := &stubUpdater{}
	log := &memLog{}

	order, err := New(up, log).MarkDelivered(context.Background(), "17")

	require.NoError(t, err)
	assert.Equal(t, "Delivered", order.Status)
	assert.Equal(t, entity.StatusDelivered, up.got)
	require.Len(t, log.entries, 1)
	assert.Equal(t, statuslog.OutcomeSucceeded, log.entries[0].Outcome)
}

func TestMarkDelivered_FailureIsNotRetried(t *testing.T) {
	up := &stubUpdater{err: errors.New("503")}
	log := &memLog{}

	_, err := New(up, log).MarkDelivered(context.Background(), "17")

	require.Error(t, err)
	assert.ErrorIs(t, err, up.err)
	assert.Equal(t, 1, up.calls)
	require.Len(t, log.entries, 1)
	assert.Equal(t, statuslog.OutcomeFailed, log.entries[0].Outcome)
}

func TestMarkDelivered_NilLogAndEmptyID(t *testing.T) {
	up := &stubUpdater{}
	tr := New(up, nil)

	_, err := tr.MarkDelivered(context.Background(), "")
	require.Error(t, err)
	assert.Zero(t, up.calls)

	_, err = tr.MarkDelivered(context.Background(), "1")
	require.NoError(t, err)
}
