//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// BookingEvent mirrors the payload the API publishes on every booking
// status transition.
type BookingEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	TimeSlotID   uuid.UUID `json:"time_slot_id"`
	UserID       uuid.UUID `json:"user_id"`
	CompanyID    uuid.UUID `json:"company_id"`
	CompanyName  string    `json:"company_name"`
	Status       string    `json:"status"`
	Participants int       `json:"participants"`
	StartISO     string    `json:"start_iso"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	userID := flag.String("user", uuid.New().String(), "User UUID the notification targets")
	status := flag.String("status", "confirmed", "Booking status to publish (pending, confirmed, rejected, cancelled)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	uid, err := uuid.Parse(*userID)
	if err != nil {
		log.Fatalf("Invalid user UUID: %v", err)
	}

	event := BookingEvent{
		BookingID:    uuid.New(),
		TimeSlotID:   uuid.New(),
		UserID:       uid,
		CompanyID:    uuid.New(),
		CompanyName:  "Aciéries du Rhône",
		Status:       *status,
		Participants: 2,
		StartISO:     "2026-11-16T09:00:00+01:00",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "bookings:events",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published successfully\n")
	fmt.Printf("   Stream: bookings:events\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Booking ID: %s\n", event.BookingID)
	fmt.Printf("   User ID: %s\n", event.UserID)
	fmt.Printf("   Status: %s\n", event.Status)
	fmt.Println("\nRun the worker (cmd/worker) and check the notifications table.")
}
