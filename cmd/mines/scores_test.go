package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-mines/internal/storage"
)

func openScoresStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	seed := []storage.Result{
		{Preset: "beginner", Height: 10, Width: 10, Mines: 10, Won: true, Elapsed: 12 * time.Second},
		{Preset: "beginner", Height: 10, Width: 10, Mines: 10, Won: false, Elapsed: 3 * time.Second},
		{Preset: "expert", Height: 16, Width: 30, Mines: 99, Won: true, Elapsed: 140 * time.Second},
	}
	for _, r := range seed {
		r.GameID = uuid.NewString()
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() error = %v", err)
		}
	}
	return store
}

func TestShowScores(t *testing.T) {
	tests := []struct {
		name string
		opts scoresOptions
		want []string
	}{
		{"all stats", scoresOptions{}, []string{"beginner", "expert", " 50%"}},
		{"preset best times", scoresOptions{preset: "beginner", limit: 10}, []string{"Best Times - beginner", "12s", "Played: 2  Won: 1"}},
		{"preset without wins", scoresOptions{preset: "intermediate", limit: 10}, []string{"No wins recorded yet."}},
		{"recent games", scoresOptions{recent: 5}, []string{"lost", "won", "16x30/99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openScoresStore(t)
			var out bytes.Buffer
			if err := showScores(&out, store, tt.opts); err != nil {
				t.Fatalf("showScores() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output = %q, want it to contain %q", out.String(), want)
				}
			}
		})
	}
}

func TestShowScoresClear(t *testing.T) {
	tests := []struct {
		name      string
		preset    string
		remaining int
	}{
		{"one preset", "beginner", 1},
		{"everything", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openScoresStore(t)
			var out bytes.Buffer
			if err := showScores(&out, store, scoresOptions{preset: tt.preset, clear: true}); err != nil {
				t.Fatalf("showScores() error = %v", err)
			}
			if !strings.Contains(out.String(), "Cleared") {
				t.Errorf("output = %q, want a confirmation", out.String())
			}

			recent, err := store.RecentResults(10)
			if err != nil {
				t.Fatalf("RecentResults() error = %v", err)
			}
			if len(recent) != tt.remaining {
				t.Errorf("%d results left, want %d", len(recent), tt.remaining)
			}
		})
	}
}
