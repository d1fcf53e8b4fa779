package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/cache"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/scheduler"
)

// runSummary 是提交自动排班后返回的摘要，完整结果通过 GET /runs/{id} 获取
type runSummary struct {
	ID          string                      `json:"id"`
	Seed        int64                       `json:"seed"`
	BestFitness []int                       `json:"bestFitness"`
	Baseline    scheduler.GenerationStats   `json:"baseline"`
	Final       scheduler.GenerationStats   `json:"final"`
	Generations []scheduler.GenerationStats `json:"generations"`
}

func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PopulationSize   int     `json:"populationSize" validate:"required,min=1"`
		Generations      int     `json:"generations" validate:"required,min=1"`
		CrossoverRate    float64 `json:"crossoverRate" validate:"min=0,max=1"`
		MutationRate     float64 `json:"mutationRate" validate:"min=0,max=1"`
		Seed             *int64  `json:"seed"`
		AppointmentCount *int    `json:"appointmentCount" validate:"omitempty,min=0"`
		Notify           bool    `json:"notify"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.rejectRun(w, r, err)
		return
	}

	if req.PopulationSize > h.config.Engine.MaxPopulationSize {
		h.rejectRun(w, r, fmt.Errorf("种群大小不能超过 %d", h.config.Engine.MaxPopulationSize))
		return
	}
	if req.Generations > h.config.Engine.MaxGenerations {
		h.rejectRun(w, r, fmt.Errorf("迭代次数不能超过 %d", h.config.Engine.MaxGenerations))
		return
	}

	operatorID, err := strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 构建参数
	parameters := &scheduler.Parameters{
		PopulationSize:   req.PopulationSize,
		Generations:      req.Generations,
		CrossoverRate:    req.CrossoverRate,
		MutationRate:     req.MutationRate,
		Seed:             req.Seed,
		AppointmentCount: h.config.Engine.AppointmentCount,
		Workers:          h.config.Engine.Workers,
	}
	if req.AppointmentCount != nil {
		parameters.AppointmentCount = *req.AppointmentCount
	}

	s, err := scheduler.New(parameters, h.catalog)
	if err != nil {
		h.runFailed(w, r, err)
		return
	}
	// 种子总是记录下来，使得结果可以复现
	seed := s.Seed()
	parameters.Seed = &seed

	// 自动排班
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Engine.RunTimeout)*time.Second)
	defer cancel()

	start := time.Now()
	result, err := s.Schedule(ctx)
	if err != nil {
		h.runFailed(w, r, err)
		return
	}

	best, _ := result.HallOfFame[0].Fitness()
	h.monitor.RecordSuccess(time.Since(start), best)

	// 保存到 redis
	run := &cache.Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		OperatorID: operatorID,
		Parameters: parameters,
		Result:     result,
	}
	if err := h.runCache.SaveRun(run); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.Notify {
		// 邮件发送失败不影响排班结果
		if err := h.publishRunReport(run); err != nil {
			slog.Error("无法发送排班报告", "runID", run.ID, "error", err)
		}
	}

	h.successResponse(w, r, "自动排班成功", summarizeRun(run))
}

func summarizeRun(run *cache.Run) runSummary {
	res := run.Result

	bestFitness := make([]int, 0, len(res.HallOfFame))
	for _, ind := range res.HallOfFame {
		fitness, _ := ind.Fitness()
		bestFitness = append(bestFitness, fitness)
	}

	return runSummary{
		ID:          run.ID,
		Seed:        res.Seed,
		BestFitness: bestFitness,
		Baseline:    res.Baseline,
		Final:       res.Generations[len(res.Generations)-1],
		Generations: res.Generations,
	}
}

func (h *Handler) publishRunReport(run *cache.Run) error {
	operator, err := h.repository.GetOperatorByID(run.OperatorID)
	if err != nil {
		return err
	}

	summary := summarizeRun(run)
	best := run.Result.HallOfFame[0]
	metrics := scheduler.CalculateMetrics(h.catalog, best)

	curve := make([]float64, 0, len(summary.Generations))
	for _, g := range summary.Generations {
		curve = append(curve, g.Max)
	}

	mailMessage := domain.MailMessage{
		Type: "run_report",
		To:   operator.Email,
		Data: domain.RunReportMailData{
			FullName:             operator.FullName,
			RunID:                run.ID,
			Seed:                 summary.Seed,
			PopulationSize:       run.Parameters.PopulationSize,
			Generations:          run.Parameters.Generations,
			BestFitness:          summary.BestFitness,
			FinalMeanFitness:     summary.Final.Mean,
			IncorrectRestPeriods: metrics.IncorrectRestPeriods,
			MismatchedSkills:     metrics.MismatchedSkills,
			TotalAppointments:    metrics.TotalAppointments,
			DroppedAppointments:  best.Dropped,
			MaxFitnessCurve:      curve,
		},
	}

	// 序列化邮件
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	// 发送邮件到消息队列中
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*cache.Run)

	h.successResponse(w, r, "获取排班结果成功", run)
}

// GetSchedule 以日历的形式列出一个排班，weekStart 参数（YYYY-MM-DD）为第 0 天，默认是运行当周的周一
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*cache.Run)
	rank := r.Context().Value(RankCtx).(int)
	ind := r.Context().Value(ScheduleCtx).(*scheduler.Individual)

	weekStart := mondayOf(run.CreatedAt)
	if param := r.URL.Query().Get("weekStart"); param != "" {
		t, err := time.ParseInLocation(time.DateOnly, param, time.Local)
		if err != nil {
			h.errorResponse(w, r, "weekStart 格式应为 YYYY-MM-DD")
			return
		}
		weekStart = t
	}

	fitness, _ := ind.Fitness()
	resp := struct {
		Rank      int               `json:"rank"`
		Fitness   int               `json:"fitness"`
		Dropped   int               `json:"dropped"`
		WeekStart time.Time         `json:"weekStart"`
		Entries   []scheduler.Entry `json:"entries"`
	}{
		Rank:      rank,
		Fitness:   fitness,
		Dropped:   ind.Dropped,
		WeekStart: weekStart,
		Entries:   scheduler.Entries(h.catalog, ind, weekStart),
	}

	h.successResponse(w, r, "获取排班成功", resp)
}

func (h *Handler) GetScheduleMetrics(w http.ResponseWriter, r *http.Request) {
	ind := r.Context().Value(ScheduleCtx).(*scheduler.Individual)

	metrics := scheduler.CalculateMetrics(h.catalog, ind)
	resp := struct {
		*scheduler.Metrics
		TotalNightShifts float64 `json:"totalNightShifts"`
		Dropped          int     `json:"dropped"`
	}{
		Metrics:          metrics,
		TotalNightShifts: metrics.TotalNightShifts(),
		Dropped:          ind.Dropped,
	}

	h.successResponse(w, r, "获取排班统计成功", resp)
}

func mondayOf(t time.Time) time.Time {
	t = t.Local()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.Local)
}
