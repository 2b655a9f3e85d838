package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type stubSource struct {
	token string
	calls int32
}

func (s *stubSource) Authenticate(ctx context.Context) (Token, error) {
	atomic.AddInt32(&s.calls, 1)
	return Token{AccessToken: s.token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func TestDoRequestRetriesTransientErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"total":0,"data":[]}`))
	}))
	defer srv.Close()

	src := &stubSource{token: "tok"}
	c := New(srv.URL, src)
	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	data, err := c.doRequest(context.Background(), http.MethodGet, "/anything", nil)
	if err != nil {
		t.Fatalf("doRequest: %v", err)
	}
	if string(data) != `{"total":0,"data":[]}` {
		t.Errorf("data = %q", data)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoRequestRefreshesOn401ThenRetriesOnce(t *testing.T) {
	var firstRequest int32 = 1
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.CompareAndSwapInt32(&firstRequest, 1, 0) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"total":1,"data":[]}`))
	}))
	defer srv.Close()

	src := &stubSource{token: "tok"}
	c := New(srv.URL, src)
	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	_, err := c.doRequest(context.Background(), http.MethodGet, "/anything", nil)
	if err != nil {
		t.Fatalf("doRequest: %v", err)
	}
	if atomic.LoadInt32(&src.calls) != 2 {
		t.Errorf("source called %d times, want 2 (initial auth + one refresh)", src.calls)
	}
}

func TestDoRequestNonRetryable4xxFailsImmediately(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	src := &stubSource{token: "tok"}
	c := New(srv.URL, src)
	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if _, err := c.doRequest(context.Background(), http.MethodGet, "/anything", nil); err == nil {
		t.Fatal("expected a fatal error for a 400 response")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (non-retryable status must not retry)", attempts)
	}
}

func TestGateBoundsConcurrency(t *testing.T) {
	g := NewGate(2)
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	acquired := make(chan struct{})
	go func() {
		_ = g.Acquire(context.Background())
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("third Acquire should block while two holders are outstanding")
	case <-time.After(30 * time.Millisecond):
	}

	g.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("third Acquire should unblock after a Release")
	}
}
