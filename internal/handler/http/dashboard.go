package http

import (
	"net/http"

	"github.com/securefront/workforce-backend-go/internal/domain/dashboard"
	"github.com/securefront/workforce-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Metrics(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Metrics handles GET /dashboard/metrics
func (h *dashboardHandlerImpl) Metrics(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.Metrics(r.Context(), id.AgencyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
