package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/monitor"
	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/scheduler"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

// readJSON 拒绝未知字段
func (h *Handler) readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

// badRequest 对校验错误只返回第一条翻译后的信息
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

// rejectRun 拒绝一次还没开始的运行，计入 invalid
func (h *Handler) rejectRun(w http.ResponseWriter, r *http.Request, err error) {
	h.monitor.RecordFailure(monitor.StatusInvalid)
	h.badRequest(w, r, err)
}

// runFailed 把创建或运行排班器的错误映射为响应，并按结果分类计数
// 参数错误和取消是调用方的问题，其余错误都算服务器内部错误
func (h *Handler) runFailed(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *scheduler.InvalidParametersError
	var runErr *scheduler.RunError

	switch {
	case errors.As(err, &paramErr):
		h.rejectRun(w, r, err)
	case errors.As(err, &runErr) && runErr.Phase == scheduler.PhaseCancelled:
		h.monitor.RecordFailure(monitor.StatusCancelled)
		h.errorResponse(w, r, "自动排班超时或被取消")
	default:
		h.monitor.RecordFailure(monitor.StatusFailed)
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "服务器内部错误",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}
