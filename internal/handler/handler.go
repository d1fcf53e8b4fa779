package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/cache"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/catalog"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/config"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/monitor"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	catalog     *catalog.Catalog
	runCache    *cache.RunCache
	monitor     *monitor.Monitor

	Mux *chi.Mux
}

func NewHandler(
	cfg *config.Config,
	repo *repository.Repository,
	cat *catalog.Catalog,
	mailCh *amqp.Channel,
	runCache *cache.RunCache,
	mon *monitor.Monitor,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		catalog:     cat,
		runCache:    runCache,
		monitor:     mon,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Method("GET", "/metrics", h.monitor.Handler())

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/catalog", h.GetCatalog)

		r.Route("/runs", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleDispatcher})).Post("/", h.CreateRun)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.run)
				r.Get("/", h.GetRun)
				r.Route("/schedules/{rank}", func(r chi.Router) {
					r.Use(h.rankedSchedule)
					r.Get("/", h.GetSchedule)
					r.Get("/metrics", h.GetScheduleMetrics)
				})
			})
		})
	})
}
