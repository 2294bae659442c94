// Package notifications refreshes a customer's notification list on a fixed
// interval for as long as a consumer is attached.
package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

var ErrAlreadyStarted = errors.New("notifications: poller already started")

type Fetcher interface {
	ListNotifications(ctx context.Context, customerID string) ([]entity.Notification, error)
}

// Snapshot is the result of one poll. Err is set when the fetch failed; the
// previous snapshot stays valid in that case.
type Snapshot struct {
	CustomerID    string
	Notifications []entity.Notification
	Unread        int
	FetchedAt     time.Time
	Err           error
}

// Poller fetches immediately on Start and then once per interval until Stop
// or until the context passed to Start is done. onUpdate runs on the poller
// goroutine and is never called after Stop returns.
type Poller struct {
	fetcher    Fetcher
	customerID string
	interval   time.Duration
	onUpdate   func(Snapshot)
	logger     *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(f Fetcher, customerID string, interval time.Duration, onUpdate func(Snapshot)) *Poller {
	return &Poller{
		fetcher:    f,
		customerID: customerID,
		interval:   interval,
		onUpdate:   onUpdate,
		logger:     slog.Default().With(slog.String("component", "notification_poller"), slog.String("customer_id", customerID)),
	}
}

// Start launches the polling goroutine. A stopped poller may be started again.
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return errors.New("notifications: poll interval must be positive")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
	return nil
}

// Stop cancels the polling goroutine and waits for it to exit. Calling Stop
// on a poller that is not running is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.logger.Debug("notification poller started", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("notification poller stopping")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	ns, err := p.fetcher.ListNotifications(ctx, p.customerID)
	// A result that arrives after cancellation belongs to a consumer that
	// has already gone away.
	if ctx.Err() != nil {
		return
	}

	snap := Snapshot{CustomerID: p.customerID, FetchedAt: time.Now().UTC(), Err: err}
	if err != nil {
		p.logger.Warn("notification poll failed", slog.Any("error", err))
	} else {
		snap.Notifications = ns
		snap.Unread = entity.UnreadCount(ns)
	}
	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
}
