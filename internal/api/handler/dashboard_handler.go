package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get loads the caller's role-dependent dashboard.
//
// @Summary      Dashboard
// @Description  Employers receive their posted jobs and the applications to them; everyone else receives their own applications.
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.Dashboard
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	dash, err := h.service.Load(c.Request().Context(), id.UserID, id.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}
