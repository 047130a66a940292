package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"marked", MarkTransient(errors.New("upstream 503")), true},
		{"wrapped marked", fmt.Errorf("call: %w", MarkTransient(errors.New("x"))), true},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"canceled", context.Canceled, false},
		{"net", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
	}

	for _, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Fatalf("%s: IsTransient=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{0, 408, 409, 429, 500, 502, 503} {
		if !retryableStatus(code) {
			t.Fatalf("expected %d to be retryable", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404, 422} {
		if retryableStatus(code) {
			t.Fatalf("expected %d to be final", code)
		}
	}
}

func TestMarkTransientNil(t *testing.T) {
	if MarkTransient(nil) != nil {
		t.Fatal("MarkTransient(nil) must stay nil")
	}
}
