package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRedisCacheHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// nothing listens on the discard port, so every ping fails fast
	_, err := NewRedisCache(ctx, "127.0.0.1:9")
	if err == nil {
		t.Fatal("expected an error for an unreachable instance")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
