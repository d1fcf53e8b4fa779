package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/seed"
)

var (
	parameters  scheduler.Parameters
	seedValue   int64
	agentsCSV   string
	withEntries bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:          "ga",
	Short:        "离线运行自动排班并以 JSON 输出名人堂",
	SilenceUsage: true,
	RunE:         run,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "输出排班所用的目录",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"agents":           cat.Agents(),
			"shifts":           cat.Shifts(),
			"appointmentTypes": cat.AppointmentTypes(),
			"securityAgents":   cat.SecurityAgents(),
		})
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&parameters.PopulationSize, "population", "p", 100, "种群大小")
	flags.IntVarP(&parameters.Generations, "generations", "g", 50, "迭代次数")
	flags.Float64Var(&parameters.CrossoverRate, "cxpb", 0.7, "交叉概率")
	flags.Float64Var(&parameters.MutationRate, "mutpb", 0.2, "变异概率")
	flags.Int64Var(&seedValue, "seed", 0, "随机种子，不指定时使用当前时间")
	flags.IntVar(&parameters.AppointmentCount, "appointments", scheduler.DefaultAppointmentCount, "问题实例中的预约数量")
	flags.IntVar(&parameters.Workers, "workers", 0, "并行评估的 goroutine 数量，0 表示使用 CPU 核数")
	flags.BoolVar(&withEntries, "entries", false, "输出每个排班的日历条目")

	rootCmd.PersistentFlags().StringVar(&agentsCSV, "agents", "", "人员名单 CSV，为空时使用内置名单")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出每一代的日志")

	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if agentsCSV == "" {
		return catalog.Default()
	}

	file, err := os.Open(agentsCSV)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	agents, err := seed.ReadAgentsCSV(file)
	if err != nil {
		return nil, err
	}

	return catalog.New(agents, catalog.DefaultShifts, catalog.DefaultAppointmentTypes)
}

type rankedSchedule struct {
	Rank    int                `json:"rank"`
	Fitness int                `json:"fitness"`
	Dropped int                `json:"dropped"`
	Metrics *scheduler.Metrics `json:"metrics"`
	Entries []scheduler.Entry  `json:"entries,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	// 日志输出到 stderr，stdout 只留给 JSON
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("加载目录: %w", err)
	}

	if cmd.Flags().Changed("seed") {
		parameters.Seed = &seedValue
	}

	s, err := scheduler.New(&parameters, cat)
	if err != nil {
		return err
	}

	result, err := s.Schedule(ctx)
	if err != nil {
		return err
	}

	weekStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // 周一
	schedules := make([]rankedSchedule, 0, len(result.HallOfFame))
	for i, ind := range result.HallOfFame {
		fitness, _ := ind.Fitness()
		rs := rankedSchedule{
			Rank:    i + 1,
			Fitness: fitness,
			Dropped: ind.Dropped,
			Metrics: scheduler.CalculateMetrics(cat, ind),
		}
		if withEntries {
			rs.Entries = scheduler.Entries(cat, ind, weekStart)
		}
		schedules = append(schedules, rs)
	}

	return printJSON(map[string]any{
		"seed":        result.Seed,
		"instance":    result.Instance,
		"baseline":    result.Baseline,
		"generations": result.Generations,
		"hallOfFame":  schedules,
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
