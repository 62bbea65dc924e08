package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/fleet-dispatch/internal/backend"
	"github.com/nhle/fleet-dispatch/internal/metrics"
	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/store"
)

// SyncState represents the current state of the background refresh.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the state of the refresh loop for the status bar.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// Snapshot is one complete fetch of the remote fleet data.
type Snapshot struct {
	Loads     []model.Load
	Drivers   []model.Driver
	Activity  []model.Activity
	Metrics   model.DashboardMetrics
	FetchedAt time.Time
}

// RefreshResultMsg is a tea.Msg sent when a background refresh completes.
type RefreshResultMsg struct {
	Snapshot     *Snapshot
	Error        error
	AuthError    *AuthErrorMsg
	NewLoadCount int
}

// AuthErrorMsg is a tea.Msg sent when the backend rejects the service key.
type AuthErrorMsg struct {
	Message string
}

// fetchTimeout is the maximum time allowed for one complete refresh.
const fetchTimeout = 30 * time.Second

// Fetcher is the subset of the backend client the poller needs.
type Fetcher interface {
	ListLoads(ctx context.Context) ([]model.Load, error)
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	RecentActivity(ctx context.Context, limit int) ([]model.Activity, error)
	PickupsOn(ctx context.Context, date string) ([]model.Stop, error)
	DeliveriesOn(ctx context.Context, date string) ([]model.Stop, error)
}

// Poller refreshes the remote fleet data on an interval, persists each
// snapshot to the local cache, and bridges results into the Bubble Tea
// runtime over a channel.
type Poller struct {
	client        Fetcher
	store         store.Store
	log           *zap.Logger
	interval      time.Duration
	activityLimit int

	status    SyncStatus
	knownIDs  map[string]bool
	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Poller. The interval defaults to a minute when zero.
func New(client Fetcher, s store.Store, interval time.Duration, activityLimit int, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	if activityLimit <= 0 {
		activityLimit = 10
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		client:        client,
		store:         s,
		log:           log,
		interval:      interval,
		activityLimit: activityLimit,
		knownIDs:      make(map[string]bool),
		resultCh:      make(chan RefreshResultMsg, 16),
		triggerCh:     make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
	}
}

// SeedKnownLoads primes new-load detection from a cached snapshot so a
// warm start does not announce every cached load as new.
func (p *Poller) SeedKnownLoads(loads []model.Load) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ld := range loads {
		p.knownIDs[ld.LoadID] = true
	}
}

// Start launches the refresh loop and returns a tea.Cmd subscribed to
// its results.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the refresh loop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate refresh.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A refresh is already queued.
	}
	return nil
}

// Status returns the current refresh status.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// loop runs the refresh cycle until Stop is called.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial fetch immediately.
	p.refreshOnce()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.refreshOnce()
		case <-p.triggerCh:
			p.refreshOnce()
		}
	}
}

// refreshOnce fetches all remote datasets concurrently, assembles a
// snapshot, persists it, and sends the result to the UI.
func (p *Poller) refreshOnce() {
	p.setStatus(SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	now := time.Now()
	today := now.UTC().Format("2006-01-02")

	var (
		loads      []model.Load
		drivers    []model.Driver
		activity   []model.Activity
		pickups    []model.Stop
		deliveries []model.Stop
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		loads, err = p.client.ListLoads(gctx)
		return err
	})
	g.Go(func() (err error) {
		drivers, err = p.client.ListDrivers(gctx)
		return err
	})
	g.Go(func() (err error) {
		activity, err = p.client.RecentActivity(gctx, p.activityLimit)
		return err
	})
	g.Go(func() (err error) {
		pickups, err = p.client.PickupsOn(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		deliveries, err = p.client.DeliveriesOn(gctx, today)
		return err
	})

	if err := g.Wait(); err != nil {
		p.setStatus(SyncError, err)
		p.log.Warn("refresh failed", zap.Error(err))

		if backend.IsAuthError(err) {
			p.sendResult(RefreshResultMsg{
				Error: err,
				AuthError: &AuthErrorMsg{
					Message: "authentication failed: run 'dispatch set-key' to update the service key",
				},
			})
			return
		}

		p.sendResult(RefreshResultMsg{Error: err})
		return
	}

	snap := &Snapshot{
		Loads:     loads,
		Drivers:   drivers,
		Activity:  activity,
		Metrics:   metrics.Compute(loads, drivers, pickups, deliveries, now),
		FetchedAt: now,
	}

	newLoadCount := p.noteNewLoads(ctx, loads)

	if err := p.store.SaveSnapshot(ctx, store.Snapshot{
		Loads:     loads,
		Drivers:   drivers,
		Activity:  activity,
		FetchedAt: now,
	}); err != nil {
		// A cache write failure does not invalidate the fetched data.
		p.log.Warn("persisting snapshot failed", zap.Error(err))
	}

	p.setStatus(SyncIdle, nil)
	p.sendResult(RefreshResultMsg{
		Snapshot:     snap,
		NewLoadCount: newLoadCount,
	})
}

// noteNewLoads records notifications for loads not seen before and
// returns how many there were. The first fetch of a cold start seeds
// the known set silently.
func (p *Poller) noteNewLoads(ctx context.Context, loads []model.Load) int {
	p.mu.Lock()
	firstFetch := len(p.knownIDs) == 0
	var fresh []model.Load
	for _, ld := range loads {
		if !p.knownIDs[ld.LoadID] {
			p.knownIDs[ld.LoadID] = true
			fresh = append(fresh, ld)
		}
	}
	p.mu.Unlock()

	if firstFetch {
		return 0
	}

	for _, ld := range fresh {
		n := model.Notification{
			LoadID:    ld.LoadID,
			Message:   fmt.Sprintf("New load: %s (%s)", ld.LoadID, ld.BrokerName),
			CreatedAt: time.Now(),
		}
		if err := p.store.CreateNotification(ctx, n); err != nil {
			p.log.Warn("creating notification failed",
				zap.String("load_id", ld.LoadID), zap.Error(err))
		}
	}
	return len(fresh)
}

// setStatus updates the refresh status.
func (p *Poller) setStatus(state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle && err == nil {
		p.status.LastSync = time.Now()
	}
}

// sendResult sends a RefreshResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg RefreshResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it after processing a RefreshResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
