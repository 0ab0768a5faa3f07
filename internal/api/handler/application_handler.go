package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// ApplicationHandler accepts resume submissions from the job detail page.
type ApplicationHandler struct {
	service   ports.ApplicationService
	maxResume int64
}

func NewApplicationHandler(service ports.ApplicationService, maxResume int64) *ApplicationHandler {
	return &ApplicationHandler{service: service, maxResume: maxResume}
}

// Apply uploads a resume and records an application to the job.
//
// @Summary      Apply to a job
// @Tags         applications
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      string  true  "Job ID"
// @Param        resume  formData  file    true  "Resume (PDF)"
// @Success      201     {object}  domain.Application
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      413     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return domain.ErrResumeRequired
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}
	content, err := readFormFile(fh, h.maxResume)
	if err != nil {
		return err
	}

	app, err := h.service.Submit(c.Request().Context(), ports.SubmitApplicationInput{
		JobID:          c.Param("id"),
		CandidateID:    id.UserID,
		CandidateEmail: id.Email,
		FileName:       fh.Filename,
		Resume:         content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// readFormFile reads at most limit+1 bytes so the service can tell an
// oversized file from one exactly at the limit.
func readFormFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	return data, nil
}
