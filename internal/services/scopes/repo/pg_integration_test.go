//go:build integration_pg

package repo

import (
	"context"
	"io"
	"sync"
	"testing"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/platform/store"
	"scopetrack/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestIntegration_PGStore(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "scopetrack-scopes-it",
		PG:      store.PGConfig{Enabled: true, URL: testkit.Postgres(t), MaxConns: 8},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	if err := EnsureSchema(ctx, st.PG); err != nil {
		t.Fatalf("schema: %v", err)
	}
	s := NewPGStore(st.PG, NewPG())

	if got, err := s.Load(ctx, "main_st"); err != nil || !got.Empty() {
		t.Fatalf("empty load = %v, %v", got.Texts(), err)
	}

	want := checklist.New("Excavate trench for gas line", "Pour concrete pad")
	if err := s.Save(ctx, "main_st", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "main_st")
	if err != nil || !got.Equal(want) {
		t.Fatalf("round trip = %v, %v", got.Texts(), err)
	}

	// concurrent writers to one key leave exactly one complete checklist
	var wg sync.WaitGroup
	for i := range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items := []string{"Frame interior walls", "Hang drywall"}
			if i%2 == 0 {
				items = []string{"Install windows"}
			}
			if err := s.Save(ctx, "main_st", checklist.New(items...)); err != nil {
				t.Errorf("save %d: %v", i, err)
			}
		}()
	}
	wg.Wait()
	got, _ = s.Load(ctx, "main_st")
	if n := got.Len(); n != 1 && n != 2 {
		t.Fatalf("torn checklist: %v", got.Texts())
	}
}
