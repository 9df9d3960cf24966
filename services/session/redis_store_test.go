package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"roombook/models"

	"github.com/go-redis/redis/v8"
)

func TestDecodeSession(t *testing.T) {
	t.Run("missing key is a fresh idle session", func(t *testing.T) {
		sess, err := decodeSession(7, "", redis.Nil)
		if err != nil {
			t.Fatal(err)
		}
		if sess.UserID != 7 || sess.State != models.StateIdle || sess.Room != "" {
			t.Fatalf("session %+v", sess)
		}
	})

	t.Run("stored JSON round-trips", func(t *testing.T) {
		in := &models.BookingSession{
			UserID:   7,
			State:    models.StateStartChosen,
			Building: "Videosecurity",
			Room:     "Gold",
			Start:    18,
		}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		out, err := decodeSession(7, string(data), nil)
		if err != nil {
			t.Fatal(err)
		}
		if out.State != in.State || out.Building != in.Building || out.Room != in.Room || out.Start != in.Start {
			t.Fatalf("decoded %+v, want %+v", out, in)
		}
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		if _, err := decodeSession(7, "", boom); !errors.Is(err, boom) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		if _, err := decodeSession(7, "{not json", nil); err == nil {
			t.Fatal("expected decode error")
		}
	})
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const userID = 990001
	client.Del(ctx, sessionKey(userID))
	defer client.Del(context.Background(), sessionKey(userID))

	store := NewRedisStore(client)
	sess, err := store.Get(ctx, userID)
	if err != nil || sess.State != models.StateIdle {
		t.Fatalf("fresh get = %+v, %v", sess, err)
	}
	sess.State = models.StateRoomChosen
	sess.Room = "Mars"
	if err := store.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, userID)
	if err != nil || got.State != models.StateRoomChosen || got.Room != "Mars" {
		t.Fatalf("get after save = %+v, %v", got, err)
	}
	if ttl := client.TTL(ctx, sessionKey(userID)).Val(); ttl != -1 {
		t.Fatalf("session key has ttl %v, want none", ttl)
	}
}
