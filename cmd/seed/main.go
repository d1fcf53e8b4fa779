package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/config"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/repository"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/seed"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var role string
	var csvPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机操作员, 2: 插入随机人员, 3: 插入内置目录, 4: 从 CSV 导入人员名单)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&role, "role", string(domain.RoleViewer), "随机操作员的角色")
	flag.StringVar(&csvPath, "csv", "", "人员名单 CSV 的路径，为空时使用配置中的路径")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的操作员数量")
			return
		}
		if !slices.Contains([]domain.Role{domain.RoleViewer, domain.RoleDispatcher, domain.RoleAdmin}, domain.Role(role)) {
			slog.Error("指定的角色非法", slog.String("role", role))
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			operator, err := utils.GenerateRandomOperator(rng, cfg.Seed.Operator.Password, cfg.Email.OperatorDomain, domain.Role(role))
			if err != nil {
				slog.Error("无法生成随机操作员", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateOperator(operator); err != nil {
				slog.Error("无法插入操作员", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入操作员成功", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的人员数量")
			return
		}

		appointmentTypes, err := repo.GetAllAppointmentTypes()
		if err != nil {
			slog.Error("无法获取预约类型", slog.String("error", err.Error()))
			return
		}
		if len(appointmentTypes) == 0 {
			appointmentTypes = catalog.DefaultAppointmentTypes
		}

		agents := make([]domain.Agent, 0, n)
		for i := 0; i < n; i++ {
			agents = append(agents, utils.GenerateRandomAgent(rng, appointmentTypes))
		}

		if err := repo.AppendAgents(agents); err != nil {
			slog.Error("无法插入人员", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入人员成功", slog.Int("count", len(agents)))
	case 3:
		seed.SeedDefaultCatalog(repo)
	case 4:
		if csvPath == "" {
			csvPath = cfg.Seed.CSVPath
		}
		seed.SeedAgentsFromCSV(repo, csvPath)
	default:
		slog.Error("指定的操作非法")
	}
}
