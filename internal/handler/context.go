package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	RunCtx      ContextKey = "run"
	RankCtx     ContextKey = "rank"
	ScheduleCtx ContextKey = "schedule"
)
