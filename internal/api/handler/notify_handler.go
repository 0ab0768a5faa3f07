package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// NotifyHandler is the relay endpoint that emails employers about new applications.
type NotifyHandler struct {
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewNotifyHandler(notifier ports.Notifier, log zerolog.Logger) *NotifyHandler {
	return &NotifyHandler{notifier: notifier, log: log}
}

// Notify sends one application email. It never retries.
//
// @Summary      Send application email
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        body  body      notifyRequest  true  "Notification"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/notify [post]
func (h *NotifyHandler) Notify(c echo.Context) error {
	var req notifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	err := h.notifier.Notify(c.Request().Context(), domain.ApplicationNotification{
		EmployerEmail: req.EmployerEmail,
		JobTitle:      req.JobTitle,
		CandidateName: req.CandidateName,
		ResumeURL:     req.ResumeURL,
	})
	if err != nil {
		h.log.Error().Err(err).Str("employer_email", req.EmployerEmail).Msg("email send failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to send email"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email sent successfully"})
}
