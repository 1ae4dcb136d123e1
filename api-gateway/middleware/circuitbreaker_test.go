package middleware

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("inventory", 3, 30*time.Second)
	failing := func() error { return errors.New("connection refused") }

	for i := 0; i < 3; i++ {
		if cb.GetState() != StateClosed {
			t.Fatalf("circuit opened after %d failures, threshold is 3", i)
		}
		cb.Call(failing)
	}

	if cb.GetState() != StateOpen {
		t.Errorf("expected open state, got %s", cb.GetState())
	}

	// Open circuit rejects without invoking the function
	called := false
	err := cb.Call(func() error {
		called = true
		return nil
	})
	if err == nil {
		t.Error("expected rejection from open circuit")
	}
	if called {
		t.Error("open circuit invoked the protected function")
	}
}

func TestCircuitRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("catalog", 1, time.Millisecond)
	cb.Call(func() error { return errors.New("boom") })

	if cb.GetState() != StateOpen {
		t.Fatalf("expected open state, got %s", cb.GetState())
	}

	time.Sleep(5 * time.Millisecond)

	// Three successes in half-open close the circuit
	for i := 0; i < 3; i++ {
		if err := cb.Call(func() error { return nil }); err != nil {
			t.Fatalf("half-open call %d rejected: %v", i, err)
		}
	}

	if cb.GetState() != StateClosed {
		t.Errorf("expected closed state after recovery, got %s", cb.GetState())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("order", 1, time.Millisecond)
	cb.Call(func() error { return errors.New("boom") })

	time.Sleep(5 * time.Millisecond)

	cb.Call(func() error { return errors.New("still down") })

	if cb.GetState() != StateOpen {
		t.Errorf("expected open state after half-open failure, got %s", cb.GetState())
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("user", 3, 30*time.Second)

	cb.Call(func() error { return errors.New("one") })
	cb.Call(func() error { return errors.New("two") })
	cb.Call(func() error { return nil })
	cb.Call(func() error { return errors.New("one again") })
	cb.Call(func() error { return errors.New("two again") })

	if cb.GetState() != StateClosed {
		t.Errorf("expected closed state, consecutive failures never reached 3")
	}
}

func TestDetermineServiceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/auth/login", "user"},
		{"/users/42", "user"},
		{"/admin/users", "user"},
		{"/messages", "user"},
		{"/conversations/7/messages", "user"},
		{"/api/products?latitude=12.9", "catalog"},
		{"/api/catalog/stats", "catalog"},
		{"/api/stock/3/sales", "inventory"},
		{"/api/listings/5", "inventory"},
		{"/api/orders/mine", "order"},
		{"/api/advisory/weather", "advisory"},
		{"/health", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := determineServiceFromPath(tt.path); got != tt.want {
			t.Errorf("determineServiceFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
