package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/securefront/workforce-backend-go/internal/domain/attendance"
	"github.com/securefront/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	MarkAbsentees(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req attendance.ClockInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserID = id.UserID
	req.AgencyID = id.AgencyID

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.StartBreak, "Break started")
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.EndBreak, "Break ended")
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.ClockOut, "Clock out successful")
}

type transitionFunc func(ctx context.Context, req attendance.AttendanceActionRequest) (attendance.AttendanceResponse, error)

func (h *attendanceHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc, message string) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := fn(r.Context(), attendance.AttendanceActionRequest{
		AgencyID:     id.AgencyID,
		AttendanceID: chi.URLParam(r, "id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// MarkAbsentees implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkAbsentees(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req attendance.MarkAbsenteesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AgencyID = id.AgencyID

	result, err := h.attendanceService.MarkAbsentees(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absentees marked", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	filter := attendance.AttendanceFilter{
		AgencyID: id.AgencyID,
		Date:     r.URL.Query().Get("date"),
		SiteID:   r.URL.Query().Get("site_id"),
		UserID:   r.URL.Query().Get("user_id"),
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ListMine(r.Context(), id.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Get(r.Context(), id.AgencyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
