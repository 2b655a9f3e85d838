package errs

import (
	"errors"
	"testing"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", &UsageError{Message: "bad flag"}, 1},
		{"profile", &ProfileError{Cause: errors.New("unknown entity")}, 1},
		{"auth", &AuthError{Message: "bad credentials"}, 2},
		{"transient", &NetworkTransientError{StatusCode: 503}, 2},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Errorf("%s: ExitCode = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := &AuthError{Message: "refresh failed", Cause: cause}
	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
