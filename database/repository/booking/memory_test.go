package bookingRepo

import (
	"context"
	"testing"

	"roombook/models"
)

func TestMemoryRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()
	var _ BookingRepository = repo

	id, err := repo.Create(ctx, 7, "Gold", "2026-10-14", 18, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a booking id")
	}
	if _, err := repo.Create(ctx, 7, "Mars", "2026-10-14", 20, 1); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, 8, "Gold", "2026-10-15", 18, 2); err != nil {
		t.Fatalf("create: %v", err)
	}

	intervals, err := repo.ListByRoomAndDate(ctx, "Gold", "2026-10-14")
	if err != nil {
		t.Fatalf("list room: %v", err)
	}
	if len(intervals) != 1 || intervals[0] != (models.Interval{Start: 18, Duration: 2}) {
		t.Fatalf("unexpected intervals %+v", intervals)
	}

	mine, err := repo.ListByUserAndDate(ctx, 7, "2026-10-14")
	if err != nil {
		t.Fatalf("list user: %v", err)
	}
	want := []models.UserBooking{{Room: "Gold", Start: 18}, {Room: "Mars", Start: 20}}
	if len(mine) != len(want) {
		t.Fatalf("got %+v, want %+v", mine, want)
	}
	for i := range want {
		if mine[i] != want[i] {
			t.Errorf("booking %d = %+v, want %+v", i, mine[i], want[i])
		}
	}

	n, err := repo.DeleteByUserRoomStartDate(ctx, 7, "Gold", 18, "2026-10-14")
	if err != nil || n != 1 {
		t.Fatalf("delete = %d, %v; want 1", n, err)
	}
	n, err = repo.DeleteByUserRoomStartDate(ctx, 7, "Gold", 18, "2026-10-14")
	if err != nil || n != 0 {
		t.Fatalf("second delete = %d, %v; want 0", n, err)
	}

	n, err = repo.DeleteAllForDate(ctx, "2026-10-14")
	if err != nil || n != 1 {
		t.Fatalf("purge = %d, %v; want 1", n, err)
	}
	if repo.Len() != 1 {
		t.Fatalf("other day should survive, have %d bookings", repo.Len())
	}
}

func TestMemoryRepoOtherUserCannotDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()
	if _, err := repo.Create(ctx, 1, "Silver", "2026-10-14", 17, 1); err != nil {
		t.Fatal(err)
	}
	n, err := repo.DeleteByUserRoomStartDate(ctx, 2, "Silver", 17, "2026-10-14")
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || repo.Len() != 1 {
		t.Fatalf("deleted %d bookings owned by another user", n)
	}
}

func TestMemoryRepoHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewMemoryBookingRepo()
	if _, err := repo.Create(ctx, 1, "Silver", "2026-10-14", 17, 1); err == nil {
		t.Fatal("expected context error")
	}
}
