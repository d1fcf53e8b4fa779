package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/config"
)

// Repository 保存操作员账号和排班目录（人员、技能、班次、预约类型）
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// queryContext 返回单条查询使用的超时 ctx
func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// withTx 在一个事务中执行 fn，fn 返回错误时回滚
// 目录的整体替换和追加都必须是原子的，否则人员的 position 会出现空洞
func (r *Repository) withTx(fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}
