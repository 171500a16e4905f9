package tui

import "github.com/vovakirdan/tui-mines/internal/storage"

// Backend bundles what the screens read from and write to.
// A zero Backend runs every screen without persistence.
type Backend struct {
	Saver   ResultSaver
	Times   BestTimeSource
	Results ResultsSource
}

// NewBackend adapts a store; a nil store yields a zero Backend.
func NewBackend(store *storage.Store) Backend {
	if store == nil {
		return Backend{}
	}
	return Backend{Saver: store, Times: store, Results: store}
}
