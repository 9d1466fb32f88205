package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"resin_widget/api"
	"resin_widget/config"
	"resin_widget/logging"
)

// NotesFetcher is satisfied by *api.Client.
type NotesFetcher interface {
	Notes(ctx context.Context, uid int64) (*api.Notes, error)
}

// UIDSource yields the game UID to poll; config.Auth implements it.
type UIDSource interface {
	GameUID() (int64, error)
}

// poller refreshes the snapshot on a fixed interval. Concurrent Refresh
// calls share a single request.
type poller struct {
	interval time.Duration
	logger   *slog.Logger
	publish  func(Snapshot)
	enabled  func() bool

	mu      sync.Mutex
	fetcher NotesFetcher
	uid     UIDSource

	group singleflight.Group
}

func newPoller(fetcher NotesFetcher, uid UIDSource, interval time.Duration, logger *slog.Logger, publish func(Snapshot)) *poller {
	return &poller{
		fetcher:  fetcher,
		uid:      uid,
		interval: config.NormalizeRefresh(interval),
		logger:   logger,
		publish:  publish,
		enabled:  func() bool { return true },
	}
}

// setSource swaps the account polled from the next refresh on.
func (p *poller) setSource(fetcher NotesFetcher, uid UIDSource) {
	p.mu.Lock()
	p.fetcher = fetcher
	p.uid = uid
	p.mu.Unlock()
}

// Run refreshes immediately, then on every tick until ctx is done.
func (p *poller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh fetches notes and publishes the resulting snapshot. A failed
// fetch publishes an error snapshot; the next tick tries again. It reports
// false when polling is disabled.
func (p *poller) Refresh(ctx context.Context) (Snapshot, bool) {
	if !p.enabled() {
		return Snapshot{}, false
	}
	v, _, _ := p.group.Do("notes", func() (any, error) {
		snap := p.fetch(ctx)
		p.publish(snap)
		return snap, nil
	})
	return v.(Snapshot), true
}

func (p *poller) fetch(ctx context.Context) Snapshot {
	p.mu.Lock()
	fetcher, source := p.fetcher, p.uid
	p.mu.Unlock()

	uid, err := source.GameUID()
	if err != nil {
		p.logger.Error("error fetching data", logging.Error(err))
		return ErrorSnapshot(err)
	}

	start := time.Now()
	notes, err := fetcher.Notes(ctx, uid)
	if err != nil {
		p.logger.Error(fetchFailure(err), logging.UID(uid), logging.Error(err))
		return ErrorSnapshot(err)
	}

	snap := NewSnapshot(notes)
	p.logger.Debug("notes fetched",
		logging.UID(uid),
		logging.Duration(time.Since(start)),
		slog.String("resin", snap.Resin),
		slog.String("daily_reward", snap.DailyReward),
		slog.String("realm_currency", snap.RealmCurrency),
	)
	return snap
}

// fetchFailure names the remedy for the API failures a user can fix.
func fetchFailure(err error) string {
	switch {
	case api.IsInvalidCookies(err):
		return "cookies rejected, update the Auth section"
	case api.IsDataNotPublic(err):
		return "real-time notes are private, enable them in the HoYoLAB battle chronicle"
	case api.IsAccountNotFound(err):
		return "no game account for this uid, check uid and server in the Auth section"
	default:
		return "error fetching notes"
	}
}
