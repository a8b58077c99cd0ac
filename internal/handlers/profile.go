package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
)

type ProfileHandler struct {
	Repo *repo.ProfileRepo
}

type profileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (h *ProfileHandler) GetProfileUsers(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_profiles_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list profile users")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProfileHandler) GetProfileUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	profile, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "cannot read profile user")
	}
	return c.JSON(http.StatusOK, profile)
}

// CreateProfileUser binds the new profile to the authenticated account.
func (h *ProfileHandler) CreateProfileUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.create")

	accountID, _ := c.Get("userID").(string)
	if accountID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no authenticated account")
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile := models.ProfileUser{
		AppUserID:   accountID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.Repo.Create(ctx, &profile); err != nil {
		l.Warn("create_profile_failed", "account", accountID, "error", err)
		return repoError(err, "cannot create profile user")
	}

	l.Info("create_profile_success", "id", profile.ID)
	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateProfileUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile := models.ProfileUser{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.Repo.Update(ctx, &profile); err != nil {
		l.Warn("update_profile_failed", "id", id, "error", err)
		return repoError(err, "cannot update profile user")
	}

	l.Info("update_profile_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProfileHandler) DeleteProfileUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.delete")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		l.Warn("delete_profile_failed", "id", id, "error", err)
		return repoError(err, "cannot delete profile user")
	}

	l.Info("delete_profile_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
