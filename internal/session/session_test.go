package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Simplici0/printprofit/internal/pricing"
)

func newTestManager(t *testing.T, store *Store) *Manager {
	t.Helper()
	m, err := NewManager(store, "test-secret", func(id string) State {
		return State{ID: id, Theme: ThemeLight, Input: pricing.Defaults()}
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestManagerLoadStartsSessionAndSetsCookie(t *testing.T) {
	store := NewStore(time.Hour)
	m := newTestManager(t, store)

	rr := httptest.NewRecorder()
	state := m.Load(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if state.ID == "" || state.Theme != ThemeLight || state.Report != nil {
		t.Fatalf("unexpected new state: %+v", state)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", store.Len())
	}
}

func TestManagerLoadReusesSignedSession(t *testing.T) {
	store := NewStore(time.Hour)
	m := newTestManager(t, store)

	first := httptest.NewRecorder()
	state := m.Load(first, httptest.NewRequest(http.MethodGet, "/", nil))
	m.Save(state.ToggleTheme())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(first.Result().Cookies()[0])
	second := httptest.NewRecorder()
	again := m.Load(second, req)

	if again.ID != state.ID || again.Theme != ThemeDark {
		t.Fatalf("expected same session with dark theme, got %+v", again)
	}
	if len(second.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for existing session")
	}
}

func TestManagerRejectsForgedCookie(t *testing.T) {
	store := NewStore(time.Hour)
	m := newTestManager(t, store)

	first := httptest.NewRecorder()
	state := m.Load(first, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: state.ID + ".deadbeef"})
	again := m.Load(httptest.NewRecorder(), req)

	if again.ID == state.ID {
		t.Fatalf("forged cookie must not resume session")
	}
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Put(State{ID: "a"})
	store.Put(State{ID: "b"})

	now = now.Add(30 * time.Second)
	if _, ok := store.Get("a"); !ok {
		t.Fatalf("expected session a to be alive")
	}

	now = now.Add(45 * time.Second)
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 expired session, got %d", removed)
	}
	if _, ok := store.Get("b"); ok {
		t.Fatalf("expected session b to be expired")
	}
	if _, ok := store.Get("a"); !ok {
		t.Fatalf("expected session a to survive, last seen 45s ago")
	}
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	store := NewStore(time.Nanosecond)
	store.Put(State{ID: "gone"})

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond, func(removed int) {
			if removed > 0 {
				select {
				case swept <- removed:
				default:
				}
			}
		})
		close(done)
	}()

	select {
	case n := <-swept:
		if n != 1 {
			t.Fatalf("expected 1 removed session, got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

func TestStateTransitions(t *testing.T) {
	defaults := pricing.Defaults()
	state := State{ID: "x", Theme: ThemeLight, Input: defaults}

	in := defaults
	in.IncludeLabor = true
	state = state.Calculated(in, pricing.Compute(in))
	if state.Report == nil || !state.Input.IncludeLabor {
		t.Fatalf("expected report after calculate: %+v", state)
	}

	toggled := state.ToggleTheme()
	if toggled.Theme != ThemeDark || toggled.Report != nil {
		t.Fatalf("toggle must switch theme and clear report: %+v", toggled)
	}
	if !toggled.Input.IncludeLabor {
		t.Fatalf("toggle must keep input")
	}

	reset := state.Reset(defaults)
	if reset.Report != nil || reset.Input.IncludeLabor || reset.Theme != ThemeLight {
		t.Fatalf("unexpected reset state: %+v", reset)
	}

	if ParseTheme("dark") != ThemeDark || ParseTheme("sepia") != ThemeLight {
		t.Fatalf("unexpected ParseTheme results")
	}
}
