package messaging

import (
	"errors"
	"fmt"
	"testing"
)

func TestPermanent(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if err := Permanent(nil); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("classifies wrapped errors", func(t *testing.T) {
		base := errors.New("bad payload")
		err := Permanent(base)

		if !IsPermanent(err) {
			t.Fatal("expected permanent classification")
		}
		if !errors.Is(err, base) {
			t.Fatal("expected wrapped error to unwrap to the cause")
		}
		if err.Error() != "bad payload" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("handle event: %w", Permanent(errors.New("bad payload")))
		if !IsPermanent(err) {
			t.Fatal("expected permanent classification through fmt.Errorf")
		}
	})

	t.Run("plain errors are retryable", func(t *testing.T) {
		if IsPermanent(errors.New("connection refused")) {
			t.Fatal("plain error must not be permanent")
		}
	})
}
