package handler

import (
	"net/http"

	"github.com/pep299/portfolio-pulse/internal/service"
	"github.com/pep299/portfolio-pulse/internal/transport/response"
)

// ToggleSchedule handles POST /schedule/enable and /schedule/disable.
type ToggleSchedule struct {
	scheduler *service.Scheduler
	enable    bool
}

func NewEnableSchedule(scheduler *service.Scheduler) *ToggleSchedule {
	return &ToggleSchedule{scheduler: scheduler, enable: true}
}

func NewDisableSchedule(scheduler *service.Scheduler) *ToggleSchedule {
	return &ToggleSchedule{scheduler: scheduler, enable: false}
}

func (h *ToggleSchedule) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var err error
	if h.enable {
		err = h.scheduler.Enable(r.Context())
	} else {
		err = h.scheduler.Disable(r.Context())
	}
	if err != nil {
		response.WriteInternalError(w, err.Error())
		return
	}

	response.WriteSuccess(w, "Schedule updated", h.scheduler.Status())
}

// GetSchedule handles GET /schedule.
type GetSchedule struct {
	scheduler *service.Scheduler
}

func NewGetSchedule(scheduler *service.Scheduler) *GetSchedule {
	return &GetSchedule{scheduler: scheduler}
}

func (h *GetSchedule) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, "", h.scheduler.Status())
}
