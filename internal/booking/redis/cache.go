package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"train-ticketing/internal/models"
)

// SeatCache keeps a per-journey set of taken "cargo:seat" members. It is
// a fast-fail view only. Orders never rely on it for correctness; the
// tickets unique constraint stays the arbiter of concurrent bookings.
type SeatCache struct {
	Client *redis.Client
	Logger *log.Logger
}

func NewSeatCache(client *redis.Client) *SeatCache {
	return &SeatCache{Client: client, Logger: log.Default()}
}

func seatKey(journeyID int64) string {
	return fmt.Sprintf("journey_seats:%d", journeyID)
}

func seatMember(ref models.SeatRef) string {
	return fmt.Sprintf("%d:%d", ref.Cargo, ref.Seat)
}

// getSeatCacheTTL returns the seat-map TTL from the environment or the
// default of 10 minutes.
func (c *SeatCache) getSeatCacheTTL() time.Duration {
	defaultTTL := 10 * time.Minute

	ttlStr := os.Getenv("JOURNEY_SEATS_TTL_MINUTES")
	if ttlStr == "" {
		return defaultTTL
	}
	ttlMin, err := strconv.Atoi(ttlStr)
	if err != nil {
		c.Logger.Println("REDIS: invalid JOURNEY_SEATS_TTL_MINUTES value '" + ttlStr + "', using default 10 minutes")
		return defaultTTL
	}
	return time.Duration(ttlMin) * time.Minute
}

// GetTakenSeats reads the cached seat set. The second return value is
// false on a cache miss; an empty journey is cached as an empty set so a
// miss and "no seats taken" stay distinguishable.
func (c *SeatCache) GetTakenSeats(ctx context.Context, journeyID int64) ([]models.SeatRef, bool, error) {
	key := seatKey(journeyID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}
	if exists == 0 {
		return nil, false, nil
	}

	members, err := c.Client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, false, err
	}

	refs := make([]models.SeatRef, 0, len(members))
	for _, m := range members {
		if m == sentinelMember {
			continue
		}
		parts := strings.SplitN(m, ":", 2)
		if len(parts) != 2 {
			return nil, false, fmt.Errorf("malformed seat member %q for journey %d", m, journeyID)
		}
		cargo, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, false, err
		}
		seat, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, false, err
		}
		refs = append(refs, models.SeatRef{Cargo: cargo, Seat: seat})
	}
	return refs, true, nil
}

// sentinelMember keeps the set key alive for journeys with no tickets.
const sentinelMember = "-"

// SetTakenSeats replaces the cached set for a journey and rearms the TTL.
func (c *SeatCache) SetTakenSeats(ctx context.Context, journeyID int64, seats []models.SeatRef) error {
	key := seatKey(journeyID)
	members := make([]interface{}, 0, len(seats)+1)
	members = append(members, sentinelMember)
	for _, ref := range seats {
		members = append(members, seatMember(ref))
	}

	pipe := c.Client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, c.getSeatCacheTTL())
	_, err := pipe.Exec(ctx)
	return err
}

// AddTakenSeats appends freshly committed seats to an existing cached
// set. A missing key is left alone; the next read repopulates it.
func (c *SeatCache) AddTakenSeats(ctx context.Context, journeyID int64, seats []models.SeatRef) error {
	if len(seats) == 0 {
		return nil
	}
	key := seatKey(journeyID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(seats))
	for _, ref := range seats {
		members = append(members, seatMember(ref))
	}
	return c.Client.SAdd(ctx, key, members...).Err()
}

// InvalidateJourney drops the cached set entirely.
func (c *SeatCache) InvalidateJourney(ctx context.Context, journeyID int64) error {
	return c.Client.Del(ctx, seatKey(journeyID)).Err()
}
