package usecase_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
	"github.com/jhoicas/hotel-warehouse/internal/infrastructure/localstore"
)

type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) Notify() {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()
}

func (n *countingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

type fixture struct {
	store    *localstore.Store
	mu       *sync.Mutex
	notifier *countingNotifier
	settings *usecase.SettingsUseCase
}

// newFixture opens a temp store seeded with the default zones, departments and profiles.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "usecase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	f := &fixture{store: s, mu: &sync.Mutex{}, notifier: &countingNotifier{}}
	f.settings = usecase.NewSettingsUseCase(s.Settings(), s.Users(), f.mu, f.notifier, zerolog.Nop(), "1234")
	require.NoError(t, f.settings.EnsureDefaults(context.Background()))
	return f
}
