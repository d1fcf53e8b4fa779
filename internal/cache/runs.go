package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/scheduler"
)

var ErrRunNotFound = errors.New("排班结果不存在或已过期")

// Run: 一次成功运行的结果，只在会话期间保存在 redis 中
type Run struct {
	ID         string                `json:"id"`
	CreatedAt  time.Time             `json:"createdAt"`
	OperatorID int64                 `json:"operatorID"`
	Parameters *scheduler.Parameters `json:"parameters"`
	Result     *scheduler.Result     `json:"result"`
}

// store 是 RunCache 用到的 redis 命令，*redis.Client 满足该接口
type store interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RunCache struct {
	rdb        store
	expiration time.Duration
	timeout    time.Duration
}

func NewRunCache(rdb store, expiration time.Duration, timeout time.Duration) *RunCache {
	return &RunCache{
		rdb:        rdb,
		expiration: expiration,
		timeout:    timeout,
	}
}

func runKey(id string) string {
	return fmt.Sprintf("run_%s", id)
}

func (c *RunCache) SaveRun(run *Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.rdb.Set(ctx, runKey(run.ID), data, c.expiration).Err()
}

func (c *RunCache) GetRun(id string) (*Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, runKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	run := &Run{}
	if err := json.Unmarshal(data, run); err != nil {
		return nil, err
	}

	return run, nil
}
