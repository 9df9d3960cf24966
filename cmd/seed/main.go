// Command seed fills today's operating day with random bookings so the
// front-end can be exercised against a realistic grid.
package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"roombook/config"
	"roombook/database"
	bookingRepo "roombook/database/repository/booking"
	lockRepo "roombook/database/repository/lock"
	"roombook/models"
	"roombook/services/booking"
	"roombook/services/catalog"

	"github.com/spf13/pflag"
)

func main() {
	attempts := pflag.Int("attempts", 40, "booking attempts per room")
	purge := pflag.Bool("purge", true, "delete today's bookings first")
	config.LoadConfig()

	window, err := config.AppConfig.Window()
	if err != nil {
		log.Fatalf("invalid window: %v", err)
	}
	cat, err := catalog.New(config.AppConfig.Buildings)
	if err != nil {
		log.Fatalf("invalid catalog: %v", err)
	}

	database.InitDB()
	defer database.Close(context.Background())
	repo := bookingRepo.NewMongoBookingRepo(database.Database(), config.AppConfig.StoreTimeout)
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
	engine := booking.NewDefaultAvailabilityEngine(repo, cat, lockRepo.NewLocalLocker(), nil, window, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *purge {
		n, err := engine.Reset(ctx)
		if err != nil {
			log.Fatalf("failed to clear bookings: %v", err)
		}
		log.Printf("removed %d existing bookings", n)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	slots := window.Slots()
	var created, rejected int
	for _, room := range cat.AllRooms() {
		for i := 0; i < *attempts; i++ {
			start := slots[rng.Intn(len(slots))]
			// Mostly short meetings, occasionally a half day.
			duration := models.HalfHour(1 + rng.Intn(4))
			if rng.Intn(10) == 0 {
				duration = window.MaxDuration / 2
			}
			if !window.Fits(start, duration) {
				continue
			}
			userID := int64(1000 + rng.Intn(50))
			if _, err := engine.Commit(ctx, userID, room.Name, start, duration); err != nil {
				if booking.IsSlotTaken(err) {
					rejected++
					continue
				}
				log.Fatalf("commit %s %s: %v", room.Name, start, err)
			}
			created++
		}
	}
	log.Printf("seeded %d bookings across %d rooms (%d overlapping attempts rejected)", created, len(cat.AllRooms()), rejected)
}
