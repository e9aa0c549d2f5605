// Package mirror copies the local store to the remote relational store in the background.
//
// Pushes are full snapshots with no conflict resolution and no retry: a failed push is reported in
// the status and the next change triggers another attempt.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
)

// Sync states.
const (
	StateIdle    = "idle"
	StateSyncing = "syncing"
	StateSuccess = "success"
	StateError   = "error"
	StateOffline = "offline"
)

// DefaultRecentTransactions is how many log records a push carries.
const DefaultRecentTransactions = 50

var (
	// ErrRemoteDisabled is returned when no remote store is configured.
	ErrRemoteDisabled = errors.New("remote mirror is not configured")
	// ErrEmptyRemote guards the local cache against being wiped by an empty remote.
	ErrEmptyRemote = fmt.Errorf("remote snapshot has no items: %w", domain.ErrConflict)
)

// LocalSnapshotter reads the local store and restores it from a snapshot. Restoring replaces items,
// profiles and settings and merges the transaction log.
type LocalSnapshotter interface {
	Snapshot(ctx context.Context, recentTransactions int) (*entity.Snapshot, error)
	Replace(ctx context.Context, snap *entity.Snapshot) error
}

// RemoteStore is the remote relational mirror.
type RemoteStore interface {
	Push(ctx context.Context, snap *entity.Snapshot) error
	Pull(ctx context.Context) (*entity.Snapshot, error)
}

// Mirror coalesces change notifications into snapshot pushes.
type Mirror struct {
	local     LocalSnapshotter
	remote    RemoteStore
	writeLock sync.Locker
	recent    int
	log       zerolog.Logger
	now       func() time.Time

	changes chan struct{}

	mu     sync.Mutex
	status dto.SyncStatusDTO
}

// New builds a mirror. remote may be nil (offline mode). writeLock is the lock shared with the
// mutating use cases; Pull holds it while replacing the local store.
func New(local LocalSnapshotter, remote RemoteStore, writeLock sync.Locker, recent int, log zerolog.Logger) *Mirror {
	if recent <= 0 {
		recent = DefaultRecentTransactions
	}
	state := StateIdle
	if remote == nil {
		state = StateOffline
	}
	return &Mirror{
		local:     local,
		remote:    remote,
		writeLock: writeLock,
		recent:    recent,
		log:       log,
		now:       time.Now,
		changes:   make(chan struct{}, 1),
		status:    dto.SyncStatusDTO{Enabled: remote != nil, State: state},
	}
}

// Notify schedules a push. It never blocks; bursts collapse into one push.
func (m *Mirror) Notify() {
	if m.remote == nil {
		return
	}
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// Run pushes after every notification until ctx is cancelled.
func (m *Mirror) Run(ctx context.Context) {
	if m.remote == nil {
		m.log.Info().Msg("remote mirror disabled, running offline")
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.changes:
			if _, err := m.PushNow(ctx); err != nil && !errors.Is(err, context.Canceled) {
				m.log.Error().Err(err).Msg("mirror push failed")
			}
		}
	}
}

// PushNow sends the current snapshot. An empty inventory is never pushed so a fresh cache cannot
// overwrite the remote copy. It returns the number of items pushed.
func (m *Mirror) PushNow(ctx context.Context) (int, error) {
	if m.remote == nil {
		return 0, ErrRemoteDisabled
	}
	snap, err := m.local.Snapshot(ctx, m.recent)
	if err != nil {
		return 0, fmt.Errorf("local snapshot: %w", err)
	}
	if len(snap.Items) == 0 {
		m.log.Debug().Msg("mirror push skipped, inventory is empty")
		return 0, nil
	}

	m.begin()
	if err := m.remote.Push(ctx, snap); err != nil {
		m.fail(err)
		return 0, fmt.Errorf("push snapshot: %w", err)
	}
	m.succeed(len(snap.Items))
	m.log.Info().
		Int("items", len(snap.Items)).
		Int("transactions", len(snap.Transactions)).
		Msg("mirror push complete")
	return len(snap.Items), nil
}

// Pull restores the local store from the remote snapshot. Transactions the remote lacks are kept.
// It returns the number of items restored.
func (m *Mirror) Pull(ctx context.Context) (int, error) {
	if m.remote == nil {
		return 0, ErrRemoteDisabled
	}
	m.begin()
	snap, err := m.remote.Pull(ctx)
	if err != nil {
		m.fail(err)
		return 0, fmt.Errorf("pull snapshot: %w", err)
	}
	if len(snap.Items) == 0 {
		m.fail(ErrEmptyRemote)
		return 0, ErrEmptyRemote
	}

	m.writeLock.Lock()
	err = m.local.Replace(ctx, snap)
	m.writeLock.Unlock()
	if err != nil {
		m.fail(err)
		return 0, fmt.Errorf("replace local store: %w", err)
	}
	m.succeed(len(snap.Items))
	m.log.Info().Int("items", len(snap.Items)).Msg("local store restored from mirror")
	return len(snap.Items), nil
}

// Status returns a copy of the current sync status.
func (m *Mirror) Status() dto.SyncStatusDTO {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mirror) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.status.State = StateSyncing
	m.status.LastAttemptAt = &now
}

func (m *Mirror) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.State = StateError
	m.status.LastError = err.Error()
}

func (m *Mirror) succeed(items int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.status.State = StateSuccess
	m.status.LastError = ""
	m.status.LastSuccessAt = &now
	m.status.PushedItems = items
}
