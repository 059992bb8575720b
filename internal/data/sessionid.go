package data

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
)

const (
	sessionCountKey = "slot:session:count:%s" // hash，field=gameID
	sessionKey      = "slot:session:%s"       // 在线标记，value=gameID
	sessionPattern  = "slot:session:2*"       // 在线标记（id 以日期开头）
	redisTimeout    = 5 * time.Second
)

// NextSessionID Redis Hash slot:session:count:YYYYMMDD，field=gameID，过期为次日 0 点
func (r *dataRepo) NextSessionID(ctx context.Context, gameID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	now := time.Now()
	date := now.Format("20060102")
	key := fmt.Sprintf(sessionCountKey, date)
	field := strconv.FormatInt(gameID, 10)

	count, err := r.data.rdb.HIncrBy(ctx, key, field, 1).Result()
	if err != nil {
		return "", errors.Newf(500, "REDIS_COUNTER_FAILED", "redis counter: %v", err)
	}

	if count == 1 {
		_ = r.data.rdb.ExpireAt(ctx, key, nextMidnight(now)).Err()
	}

	return formatSessionID(date, gameID, count), nil
}

func formatSessionID(date string, gameID, n int64) string {
	return fmt.Sprintf("%s-%d-%d", date, gameID, n)
}

func nextMidnight(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
}

// MarkSessionActive 在线标记，ttl 与空闲清理一致
func (r *dataRepo) MarkSessionActive(ctx context.Context, sessionID string, gameID int64, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	key := fmt.Sprintf(sessionKey, sessionID)
	if err := r.data.rdb.Set(ctx, key, gameID, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// ClearSession 删除在线标记
func (r *dataRepo) ClearSession(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	key := fmt.Sprintf(sessionKey, sessionID)
	if err := r.data.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
