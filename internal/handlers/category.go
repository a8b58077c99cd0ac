package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
)

type CategoryHandler struct {
	Repo *repo.CategoryRepo
}

type categoryRequest struct {
	Title string `json:"title"`
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.Repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_categories_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	category, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "cannot read category")
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetCategoryByTitle(c echo.Context) error {
	ctx := c.Request().Context()

	category, err := h.Repo.GetByTitle(ctx, c.Param("title"))
	if err != nil {
		return repoError(err, "cannot read category")
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	category := models.Category{Title: req.Title}
	if err := h.Repo.Create(ctx, &category); err != nil {
		l.Warn("create_category_failed", "title", req.Title, "error", err)
		return repoError(err, "cannot create category")
	}

	l.Info("create_category_success", "id", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category := models.Category{ID: id, Title: req.Title}
	if err := h.Repo.Update(ctx, &category); err != nil {
		l.Warn("update_category_failed", "id", id, "error", err)
		return repoError(err, "cannot update category")
	}

	l.Info("update_category_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		l.Warn("delete_category_failed", "id", id, "error", err)
		return repoError(err, "cannot delete category")
	}

	l.Info("delete_category_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
