package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

type ProfileHandler struct {
	profiles  ports.ProfileService
	auth      ports.AuthService
	maxAvatar int64
}

func NewProfileHandler(profiles ports.ProfileService, auth ports.AuthService, maxAvatar int64) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth, maxAvatar: maxAvatar}
}

// Get returns the caller's profile.
//
// @Summary      Get profile
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.profiles.Get(c.Request().Context(), id.UserID, id.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: p})
}

// Update edits the caller's profile. When the role changes a new token
// carrying it is returned.
//
// @Summary      Update profile
// @Tags         profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.UpdateProfileInput{FullName: req.FullName, Username: req.Username, Website: req.Website}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	p, err := h.profiles.Update(c.Request().Context(), id.UserID, id.Email, in)
	if err != nil {
		return err
	}

	resp := profileResponse{Profile: p}
	if p.Role != id.Role {
		token, _, err := h.auth.IssueToken(id.UserID, id.Email, p.Role)
		if err != nil {
			return err
		}
		resp.Token = token
	}
	return c.JSON(http.StatusOK, resp)
}

// UploadAvatar stores a new avatar image for the caller.
//
// @Summary      Upload avatar
// @Tags         profile
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "PNG, JPEG, GIF or WebP image"
// @Success      200     {object}  profileResponse
// @Failure      400     {object}  errorResponse
// @Failure      413     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	p, err := h.profiles.UploadAvatar(c.Request().Context(), ports.UploadAvatarInput{
		UserID:   id.UserID,
		Email:    id.Email,
		FileName: fh.Filename,
		Content:  f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: p})
}
