package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// JobHandler serves public job browsing and employer job management.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Featured returns the newest active jobs for the home page.
//
// @Summary      Featured jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  jobListResponse
// @Router       /v1/jobs/featured [get]
func (h *JobHandler) Featured(c echo.Context) error {
	jobs, err := h.service.FeaturedJobs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobListResponse{Jobs: jobs, Count: len(jobs)})
}

// List searches active jobs by title.
//
// @Summary      Search jobs
// @Tags         jobs
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive title substring"
// @Param        limit   query     int     false  "Maximum results (1-100)"
// @Success      200     {object}  jobListResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	var q listJobsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	jobs, err := h.service.ListJobs(c.Request().Context(), ports.ListJobsInput{Search: q.Search, Limit: q.Limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobListResponse{Jobs: jobs, Count: len(jobs)})
}

// Get returns one job with its employer's contact email.
//
// @Summary      Job detail
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  ports.JobDetail
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Create posts a new job owned by the caller.
//
// @Summary      Post a job
// @Tags         jobs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	in, err := bindJob(c)
	if err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.Request().Context(), id.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Update edits a job the caller owns.
//
// @Summary      Edit a job
// @Tags         jobs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string      true  "Job ID"
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      200   {object}  domain.Job
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	in, err := bindJob(c)
	if err != nil {
		return err
	}

	job, err := h.service.UpdateJob(c.Request().Context(), id.UserID, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job the caller owns together with its applications.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteJob(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindJob(c echo.Context) (ports.JobInput, error) {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return ports.JobInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.JobInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return ports.JobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, nil
}
