package lockRepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisLockerExcludesAndReleases(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	client.Del(context.Background(), lockKey("Gold", "2026-10-14"))

	l := NewRedisLocker(client, 2*time.Second)
	unlock, err := l.Lock(context.Background(), "Gold", "2026-10-14")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "Gold", "2026-10-14"); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("second holder got %v, want ErrLockTimeout", err)
	}

	unlock()
	again, err := l.Lock(context.Background(), "Gold", "2026-10-14")
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	again()
	if n := client.Exists(context.Background(), lockKey("Gold", "2026-10-14")).Val(); n != 0 {
		t.Fatalf("lock key still present after release")
	}
}
