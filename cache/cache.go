package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// TTL for derived availability slots. Short on purpose: the cache only
// absorbs bursts of slot lookups while a patient is picking a time.
const availabilityTTL = 2 * time.Minute

// Init connects to Redis when REDIS_ADDR is set. Without it the
// client stays nil and every cache operation is a no-op, so the
// server runs fine with no Redis at all.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, availability caching disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Printf("Redis unavailable, availability caching disabled: %v", err)
		Client = nil
		return
	}
	log.Println("Connected to Redis")
}

func availabilityKey(doctorProfileID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", doctorProfileID, date)
}

// GetAvailability returns the cached slot payload for a doctor/date,
// or "" on a miss. Cache errors are treated as misses.
func GetAvailability(doctorProfileID uint, date string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(Ctx, availabilityKey(doctorProfileID, date)).Result()
	if err != nil {
		return ""
	}
	return val
}

func SetAvailability(doctorProfileID uint, date string, payload string) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, availabilityKey(doctorProfileID, date), payload, availabilityTTL).Err(); err != nil {
		log.Printf("Failed to cache availability for doctor %d: %v", doctorProfileID, err)
	}
}

// InvalidateAvailability drops the cached slots for a doctor/date after
// any booking mutation touching that day.
func InvalidateAvailability(doctorProfileID uint, date string) {
	if Client == nil {
		return
	}
	if err := Client.Del(Ctx, availabilityKey(doctorProfileID, date)).Err(); err != nil {
		log.Printf("Failed to invalidate availability for doctor %d: %v", doctorProfileID, err)
	}
}
