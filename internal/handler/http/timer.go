package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
	"github.com/shiftledger/shiftledger-backend-go/internal/handler/http/response"
)

type TimerHandler interface {
	ClockAction(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	CancelLastEnd(w http.ResponseWriter, r *http.Request)
	CorrectEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)
}

type timerHandlerImpl struct {
	timerService timer.TimerService
}

func NewTimerHandler(timerService timer.TimerService) TimerHandler {
	return &timerHandlerImpl{
		timerService: timerService,
	}
}

// ClockAction implements TimerHandler.
func (h *timerHandlerImpl) ClockAction(w http.ResponseWriter, r *http.Request) {
	var req timer.ClockActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.timerService.ClockAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// GetDay implements TimerHandler. The employee query parameter is admin-only;
// employees always read their own day.
func (h *timerHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	employeeID := r.URL.Query().Get("employee_id")

	day, err := h.timerService.GetDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// CancelLastEnd implements TimerHandler.
func (h *timerHandlerImpl) CancelLastEnd(w http.ResponseWriter, r *http.Request) {
	var req timer.CancelLastEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.timerService.CancelLastEnd(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checkout cancelled", day)
}

// CorrectEvent implements TimerHandler.
func (h *timerHandlerImpl) CorrectEvent(w http.ResponseWriter, r *http.Request) {
	var req timer.CorrectEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "id")

	day, err := h.timerService.CorrectEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event corrected", day)
}

// DeleteEvent implements TimerHandler.
func (h *timerHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	var req timer.DeleteEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EventID = chi.URLParam(r, "id")

	day, err := h.timerService.DeleteEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event deleted", day)
}
