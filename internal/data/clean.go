package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	scanCount = 10000 // 每轮 SCAN 建议返回数量（Redis 可能多返回）
	pipeBatch = 1000  // 每批 Pipeline DEL 数量
)

// pipeliner 用于 SCAN + Pipeline DEL（同一节点上批量删，减少 RTT）
type pipeliner interface {
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Pipeline() redis.Pipeliner
}

// scanAndDelete 在单个 client 上 SCAN，用 Pipeline 分批 DEL，返回本节点删除数量
func scanAndDelete(ctx context.Context, pattern string, client pipeliner) (int, error) {
	var cursor uint64
	totalDeleted := 0

	for {
		select {
		case <-ctx.Done():
			return totalDeleted, ctx.Err()
		default:
		}

		keys, next, err := client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return totalDeleted, fmt.Errorf("scan failed: %w", err)
		}
		cursor = next

		for i := 0; i < len(keys); i += pipeBatch {
			batch := keys[i:min(i+pipeBatch, len(keys))]
			pipe := client.Pipeline()
			for _, key := range batch {
				pipe.Del(ctx, key)
			}

			cmds, err := pipe.Exec(ctx)
			if err != nil {
				return totalDeleted, fmt.Errorf("pipeline del: %w", err)
			}
			for _, cmd := range cmds {
				if n, ok := cmd.(*redis.IntCmd); ok {
					if v, err := n.Result(); err == nil {
						totalDeleted += int(v)
					}
				}
			}
		}

		if cursor == 0 {
			break
		}
	}

	return totalDeleted, nil
}

// cleanPattern 清理匹配 pattern 的键；集群模式下各 master 并发执行
func cleanPattern(ctx context.Context, rdb redis.UniversalClient, pattern string) (int, error) {
	switch client := rdb.(type) {
	case *redis.ClusterClient:
		// ForEachMaster 会并发回调，这里只收集节点
		var (
			mu      sync.Mutex
			masters []*redis.Client
		)
		err := client.ForEachMaster(ctx, func(_ context.Context, node *redis.Client) error {
			mu.Lock()
			masters = append(masters, node)
			mu.Unlock()
			return nil
		})
		if err != nil {
			return 0, err
		}

		counts := make([]int, len(masters))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(10)
		for i, node := range masters {
			g.Go(func() error {
				n, err := scanAndDelete(gctx, pattern, node)
				counts[i] = n
				return err
			})
		}
		err = g.Wait()
		total := 0
		for _, n := range counts {
			total += n
		}
		return total, err
	case pipeliner:
		return scanAndDelete(ctx, pattern, client)
	default:
		return 0, fmt.Errorf("unsupported redis client type: %T", rdb)
	}
}

// CleanSessionKeys 启动时清理上次进程遗留的在线标记
func (r *dataRepo) CleanSessionKeys(ctx context.Context) error {
	n, err := cleanPattern(ctx, r.data.rdb, sessionPattern)
	if err != nil {
		return fmt.Errorf("cleanup failed for pattern %s: %w", sessionPattern, err)
	}
	if n > 0 {
		r.log.Infof("Cleaned %d stale session keys", n)
	}
	return nil
}
