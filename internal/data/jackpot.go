package data

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const jackpotKey = "slot:jackpot"

// LoadJackpots 读取奖池金额，key 不存在时返回空 map
func (r *dataRepo) LoadJackpots(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	raw, err := r.data.rdb.HGetAll(ctx, jackpotKey).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("hgetall %s: %w", jackpotKey, err)
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.log.Warnf("skip invalid jackpot %s=%q", k, v)
			continue
		}
		out[k] = n
	}
	return out, nil
}

// SaveJackpots 覆盖写入奖池金额
func (r *dataRepo) SaveJackpots(ctx context.Context, amounts map[string]int64) error {
	if len(amounts) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	values := make(map[string]any, len(amounts))
	for k, v := range amounts {
		values[k] = v
	}
	if err := r.data.rdb.HSet(ctx, jackpotKey, values).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", jackpotKey, err)
	}
	return nil
}
