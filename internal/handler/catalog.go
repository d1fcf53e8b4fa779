package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Agents           []domain.Agent `json:"agents"`
		Shifts           []domain.Shift `json:"shifts"`
		AppointmentTypes []string       `json:"appointmentTypes"`
		SecurityAgents   []string       `json:"securityAgents"`
	}{
		Agents:           h.catalog.Agents(),
		Shifts:           h.catalog.Shifts(),
		AppointmentTypes: h.catalog.AppointmentTypes(),
		SecurityAgents:   h.catalog.SecurityAgents(),
	}

	h.successResponse(w, r, "获取目录成功", resp)
}
