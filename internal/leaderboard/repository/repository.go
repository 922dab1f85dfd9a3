// Package repository persists leaderboard AP figures and ranking snapshots
// in Redis. AP amounts live in one hash per period; the previous ranking
// order per period is kept as a list so ties can preserve prior order.
package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyAgentsList  = "leaderboard:agents"
	keyAgentsSet   = "leaderboard:agents:set"
	keyAPPrefix    = "leaderboard:ap:"
	keyOrderPrefix = "leaderboard:order:"
)

// Repository stores leaderboard state in Redis.
type Repository struct {
	rdb *redis.Client
}

// New creates a leaderboard repository on the given Redis client.
func New(rdb *redis.Client) *Repository {
	return &Repository{rdb: rdb}
}

func apKey(period string) string {
	return keyAPPrefix + period
}

func orderKey(period string) string {
	return keyOrderPrefix + period
}

// register remembers the agent in registration order. First sight appends
// to the agents list; repeats are no-ops.
func (r *Repository) register(ctx context.Context, agentID uuid.UUID) error {
	added, err := r.rdb.SAdd(ctx, keyAgentsSet, agentID.String()).Result()
	if err != nil {
		return fmt.Errorf("registering leaderboard agent: %w", err)
	}
	if added > 0 {
		if err := r.rdb.RPush(ctx, keyAgentsList, agentID.String()).Err(); err != nil {
			return fmt.Errorf("registering leaderboard agent: %w", err)
		}
	}
	return nil
}

// SetAP overwrites the agent's AP figure for one period.
func (r *Repository) SetAP(ctx context.Context, agentID uuid.UUID, period string, amount float64) error {
	if err := r.register(ctx, agentID); err != nil {
		return err
	}
	if err := r.rdb.HSet(ctx, apKey(period), agentID.String(), strconv.FormatFloat(amount, 'f', -1, 64)).Err(); err != nil {
		return fmt.Errorf("setting AP: %w", err)
	}
	return nil
}

// AP returns the agent's AP figure for one period, zero when absent.
func (r *Repository) AP(ctx context.Context, agentID uuid.UUID, period string) (float64, error) {
	val, err := r.rdb.HGet(ctx, apKey(period), agentID.String()).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading AP: %w", err)
	}
	amount, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing AP: %w", err)
	}
	return amount, nil
}

// AddAP increments the agent's AP figure for one period and returns the new
// total.
func (r *Repository) AddAP(ctx context.Context, agentID uuid.UUID, period string, delta float64) (float64, error) {
	if err := r.register(ctx, agentID); err != nil {
		return 0, err
	}
	total, err := r.rdb.HIncrByFloat(ctx, apKey(period), agentID.String(), delta).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing AP: %w", err)
	}
	return total, nil
}

// Agents returns every known agent in registration order.
func (r *Repository) Agents(ctx context.Context) ([]uuid.UUID, error) {
	raw, err := r.rdb.LRange(ctx, keyAgentsList, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing leaderboard agents: %w", err)
	}
	return parseIDs(raw), nil
}

// APs returns the AP figure per agent for one period. Agents without a
// figure for the period are absent from the map.
func (r *Repository) APs(ctx context.Context, period string) (map[uuid.UUID]float64, error) {
	raw, err := r.rdb.HGetAll(ctx, apKey(period)).Result()
	if err != nil {
		return nil, fmt.Errorf("loading AP figures: %w", err)
	}

	aps := make(map[uuid.UUID]float64, len(raw))
	for field, val := range raw {
		id, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		amount, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		aps[id] = amount
	}
	return aps, nil
}

// PreviousOrder returns the agent order of the last ranking snapshot for
// one period, best rank first. Empty before the first snapshot.
func (r *Repository) PreviousOrder(ctx context.Context, period string) ([]uuid.UUID, error) {
	raw, err := r.rdb.LRange(ctx, orderKey(period), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("loading previous ranking: %w", err)
	}
	return parseIDs(raw), nil
}

// SaveOrder replaces the ranking snapshot for one period.
func (r *Repository) SaveOrder(ctx context.Context, period string, order []uuid.UUID) error {
	vals := make([]interface{}, 0, len(order))
	for _, id := range order {
		vals = append(vals, id.String())
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, orderKey(period))
	if len(vals) > 0 {
		pipe.RPush(ctx, orderKey(period), vals...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving ranking snapshot: %w", err)
	}
	return nil
}

func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
