package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingSource struct {
	calls int32
	block chan struct{}
	fail  bool
	token Token
}

func (s *countingSource) Authenticate(ctx context.Context) (Token, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.block != nil {
		<-s.block
	}
	if s.fail {
		return Token{}, errors.New("boom")
	}
	return s.token, nil
}

func TestAuthenticateSucceedsOnce(t *testing.T) {
	src := &countingSource{token: Token{AccessToken: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}}
	a := NewAuthenticator(src)

	tok, err := a.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if tok.AccessToken != "tok-1" {
		t.Errorf("AccessToken = %q", tok.AccessToken)
	}

	if _, err := a.Authenticate(context.Background()); err != nil {
		t.Fatalf("second Authenticate: %v", err)
	}
	if atomic.LoadInt32(&src.calls) != 1 {
		t.Errorf("source called %d times, want 1 (second call should reuse Ready state)", src.calls)
	}
}

func TestRefreshCoalescesConcurrentCallers(t *testing.T) {
	src := &countingSource{
		block: make(chan struct{}),
		token: Token{AccessToken: "tok-2", ExpiresAt: time.Now().Add(time.Hour)},
	}
	a := NewAuthenticator(src)

	var wg sync.WaitGroup
	results := make([]Token, 5)
	errsOut := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errsOut[i] = a.Refresh(context.Background())
		}(i)
	}

	// Give every goroutine a chance to block inside Authenticate before
	// releasing it, so they all observe the same in-flight future.
	time.Sleep(20 * time.Millisecond)
	close(src.block)
	wg.Wait()

	if atomic.LoadInt32(&src.calls) != 1 {
		t.Errorf("source called %d times, want exactly 1 (coalesced)", src.calls)
	}
	for i, err := range errsOut {
		if err != nil {
			t.Errorf("caller %d: %v", i, err)
		}
		if results[i].AccessToken != "tok-2" {
			t.Errorf("caller %d token = %q", i, results[i].AccessToken)
		}
	}
}

func TestRefreshFailureFailsSubsequentCallers(t *testing.T) {
	src := &countingSource{fail: true}
	a := NewAuthenticator(src)

	if _, err := a.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if _, err := a.Authenticate(context.Background()); err == nil {
		t.Fatal("expected Authenticate to fail once state is Failed")
	}
}
