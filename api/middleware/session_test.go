package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mnmarket/marketlink-backend/internal/session"
)

type stubSessionStore struct {
	states map[string]*session.State
	saved  []*session.State
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{states: map[string]*session.State{}}
}

func (s *stubSessionStore) Load(_ context.Context, token string) (*session.State, error) {
	state, ok := s.states[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	return state, nil
}

func (s *stubSessionStore) Save(_ context.Context, state *session.State) error {
	s.states[state.Token] = state
	s.saved = append(s.saved, state)
	return nil
}

const testCookie = "marketlink_session"

func sessionEcho(t *testing.T, got **session.State) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := SessionFromContext(r.Context())
		if !ok {
			t.Fatal("expected session on context")
		}
		*got = state
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestSessionMintsFreshSessionAndCookie(t *testing.T) {
	store := newStubSessionStore()
	var got *session.State
	handler := Session(store, testCookie, nil)(sessionEcho(t, &got))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got == nil || got.Token == "" {
		t.Fatal("expected fresh session with token")
	}
	if got.Cart == nil || !got.Cart.IsEmpty() {
		t.Fatal("expected fresh empty cart")
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected session persisted once, got %d saves", len(store.saved))
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != testCookie {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if cookies[0].Value != got.Token {
		t.Fatal("expected cookie to carry the session token")
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
}

func TestSessionReusesExistingSession(t *testing.T) {
	store := newStubSessionStore()
	existing, err := session.NewState()
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	existing.Name = "Ada Fields"
	store.states[existing.Token] = existing

	var got *session.State
	handler := Session(store, testCookie, nil)(sessionEcho(t, &got))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: existing.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got == nil || got.Token != existing.Token {
		t.Fatal("expected existing session reused")
	}
	if got.Name != "Ada Fields" {
		t.Fatalf("expected state loaded, got %+v", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a known session")
	}
}

func TestSessionUnknownTokenGetsFreshSession(t *testing.T) {
	store := newStubSessionStore()
	var got *session.State
	handler := Session(store, testCookie, nil)(sessionEcho(t, &got))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "expired-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got == nil || got.Token == "expired-token" {
		t.Fatal("expected replacement session for expired token")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("expected replacement cookie")
	}
}
