package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

func TestUserStore(t *testing.T) {
	engine := newTestEngine(t)
	store := NewUserStore(engine)
	ctx := context.Background()

	alice, err := domain.NewUser("alice", domain.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	alice.PasswordHash = "$2a$10$fakehash"

	t.Run("create and get", func(t *testing.T) {
		if err := store.Create(ctx, alice); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := store.GetByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetByUsername: %v", err)
		}
		if got.ID != alice.ID || got.Role != domain.RoleAdmin || !got.Active {
			t.Errorf("got %+v, want stored alice", got)
		}
		if got.PasswordHash != alice.PasswordHash {
			t.Error("password hash not preserved")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup, err := domain.NewUser("alice", domain.RoleUser)
		if err != nil {
			t.Fatal(err)
		}
		dup.PasswordHash = "$2a$10$otherhash"

		if err := store.Create(ctx, dup); !errors.Is(err, domain.ErrUserExists) {
			t.Errorf("Create duplicate = %v, want ErrUserExists", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := store.GetByUsername(ctx, "nobody")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("GetByUsername(nobody) = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		bob, err := domain.NewUser("bob", domain.RoleUser)
		if err != nil {
			t.Fatal(err)
		}
		bob.PasswordHash = "$2a$10$bobhash"
		if err := store.Create(ctx, bob); err != nil {
			t.Fatal(err)
		}

		count, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if count != 2 {
			t.Errorf("Count() = %d, want 2", count)
		}
	})

	t.Run("concurrent create distinct users", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				u, err := domain.NewUser("worker-"+string(rune('a'+i)), domain.RoleUser)
				if err != nil {
					errs[i] = err
					return
				}
				u.PasswordHash = "$2a$10$whash"
				errs[i] = store.Create(ctx, u)
			}(i)
		}
		wg.Wait()
		for i, err := range errs {
			if err != nil {
				t.Errorf("concurrent Create %d: %v", i, err)
			}
		}
	})
}

func TestAuditStore(t *testing.T) {
	engine := newTestEngine(t)

	// Advancing clock so events get distinct ULID timestamps.
	var mu sync.Mutex
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}

	store := NewAuditStore(engine, WithAuditClock(clock))
	ctx := context.Background()

	if err := store.RecordLogin(ctx, "sgus-1", "alice"); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	if err := store.RecordLogin(ctx, "sgus-2", "bob"); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	if err := store.RecordLogout(ctx, "sgus-1", "alice"); err != nil {
		t.Fatalf("RecordLogout: %v", err)
	}

	t.Run("list newest first", func(t *testing.T) {
		events, err := store.List(ctx, 0)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("List returned %d events, want 3", len(events))
		}

		if events[0].Action != domain.AuditLogout || events[0].Username != "alice" {
			t.Errorf("newest event = %s/%s, want LOGOUT/alice", events[0].Action, events[0].Username)
		}
		if events[2].Action != domain.AuditLogin || events[2].Username != "alice" {
			t.Errorf("oldest event = %s/%s, want LOGIN/alice", events[2].Action, events[2].Username)
		}

		for _, e := range events {
			if len(e.ID) != 31 || e.ID[:5] != domain.AuditEventIDPrefix {
				t.Errorf("event ID %q has unexpected format", e.ID)
			}
			if e.Timestamp == 0 {
				t.Error("event missing timestamp")
			}
		}
	})

	t.Run("limit caps to newest", func(t *testing.T) {
		events, err := store.List(ctx, 2)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("List(2) returned %d events", len(events))
		}
		if events[0].Action != domain.AuditLogout {
			t.Errorf("List(2) newest = %s, want LOGOUT", events[0].Action)
		}
	})
}

func TestPolicyStore(t *testing.T) {
	engine := newTestEngine(t)
	store := NewPolicyStore(engine)
	ctx := context.Background()

	t.Run("missing row", func(t *testing.T) {
		_, found, err := store.LoadTimeoutSeconds(ctx)
		if err != nil {
			t.Fatalf("LoadTimeoutSeconds: %v", err)
		}
		if found {
			t.Error("empty store must report no row")
		}
	})

	t.Run("save and load", func(t *testing.T) {
		if err := store.SaveTimeoutSeconds(ctx, 45); err != nil {
			t.Fatalf("SaveTimeoutSeconds: %v", err)
		}

		seconds, found, err := store.LoadTimeoutSeconds(ctx)
		if err != nil {
			t.Fatalf("LoadTimeoutSeconds: %v", err)
		}
		if !found || seconds != 45 {
			t.Errorf("loaded (%d, %v), want (45, true)", seconds, found)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := store.SaveTimeoutSeconds(ctx, 600); err != nil {
			t.Fatal(err)
		}
		seconds, _, err := store.LoadTimeoutSeconds(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if seconds != 600 {
			t.Errorf("loaded %d after overwrite, want 600", seconds)
		}
	})

	t.Run("corrupt row", func(t *testing.T) {
		if err := engine.Set(ctx, []byte(policyKey), []byte("not-a-number")); err != nil {
			t.Fatal(err)
		}
		_, _, err := store.LoadTimeoutSeconds(ctx)
		if !errors.Is(err, domain.ErrStorageError) {
			t.Errorf("corrupt row = %v, want ErrStorageError", err)
		}
	})
}
