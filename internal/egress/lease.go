package egress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNoFreeRange = errors.New("egress: no free range id")
	ErrLeaseLost   = errors.New("egress: lease expired or held by another owner")
)

// The owner check and the write run as one script.
var (
	renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)
)

const (
	defaultLeaseTTL = 10 * time.Minute
	leaseAttempts   = 64
)

// RangeLeaser hands out range ids that no other live worker holds. A lease is
// a Redis key with a TTL; holders renew it while they run.
type RangeLeaser struct {
	rdb    redis.UniversalClient
	prefix string
	owner  string
	ttl    time.Duration
	logger *slog.Logger
}

type LeaseConfig struct {
	KeyPrefix string
	Owner     string
	TTL       time.Duration
}

func NewRangeLeaser(rdb redis.UniversalClient, cfg LeaseConfig, logger *slog.Logger) *RangeLeaser {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "tubeharvest:egress"
	}
	if cfg.TTL == 0 {
		cfg.TTL = defaultLeaseTTL
	}
	return &RangeLeaser{
		rdb:    rdb,
		prefix: cfg.KeyPrefix,
		owner:  cfg.Owner,
		ttl:    cfg.TTL,
		logger: logger.With("component", "range_leaser"),
	}
}

func (l *RangeLeaser) counterKey() string {
	return l.prefix + ":next"
}

func (l *RangeLeaser) rangeKey(id uint16) string {
	return fmt.Sprintf("%s:range:%d", l.prefix, id)
}

// Acquire claims the next free range id. Candidates come from a shared
// counter so concurrent callers rarely contend for the same id.
func (l *RangeLeaser) Acquire(ctx context.Context) (uint16, error) {
	for attempt := 0; attempt < leaseAttempts; attempt++ {
		n, err := l.rdb.Incr(ctx, l.counterKey()).Result()
		if err != nil {
			return 0, fmt.Errorf("advance range counter: %w", err)
		}
		id := uint16((n - 1) % (1 << 16))

		ok, err := l.rdb.SetNX(ctx, l.rangeKey(id), l.owner, l.ttl).Result()
		if err != nil {
			return 0, fmt.Errorf("claim range %d: %w", id, err)
		}
		if ok {
			l.logger.Debug("range leased", "range_id", id, "owner", l.owner)
			return id, nil
		}
	}
	return 0, ErrNoFreeRange
}

// Renew extends a lease this owner holds.
func (l *RangeLeaser) Renew(ctx context.Context, id uint16) error {
	n, err := renewScript.Run(ctx, l.rdb, []string{l.rangeKey(id)}, l.owner, l.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("renew range %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("renew range %d: %w", id, ErrLeaseLost)
	}
	return nil
}

// Release frees a lease if this owner still holds it.
func (l *RangeLeaser) Release(ctx context.Context, id uint16) error {
	if err := releaseScript.Run(ctx, l.rdb, []string{l.rangeKey(id)}, l.owner).Err(); err != nil {
		return fmt.Errorf("release range %d: %w", id, err)
	}
	return nil
}
