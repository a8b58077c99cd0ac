package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/mykafka"
	"github.com/Skotchmaster/inventory/internal/query"
	"github.com/Skotchmaster/inventory/internal/repo"
)

type SaleHandler struct {
	Repo     *repo.SaleRepo
	Producer *mykafka.Producer
}

type saleRequest struct {
	ProductID     int        `json:"product_id"`
	ProfileUserID *int       `json:"profile_user_id"`
	Quantity      int        `json:"quantity"`
	SaleDate      *time.Time `json:"sale_date"`
}

func (h *SaleHandler) GetSales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sale.list")

	filter := query.SaleFilter{
		Page: query.Page{
			Number: parseIntDefault(c.QueryParam("page"), query.DefaultPageNumber),
			Size:   parseIntDefault(c.QueryParam("size"), query.DefaultPageSize),
		},
	}
	if raw := c.QueryParam("profile_user_id"); raw != "" {
		id := parseIntDefault(raw, 0)
		filter.ProfileUserID = &id
	}
	if raw := c.QueryParam("quantity"); raw != "" {
		q := parseIntDefault(raw, 0)
		filter.Quantity = &q
	}

	items, err := h.Repo.List(ctx, filter)
	if err != nil {
		l.Error("list_sales_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list sales")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SaleHandler) GetSale(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	sale, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "cannot read sale")
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) CreateSale(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sale.create")

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	sale := models.Sale{
		ProductID:     req.ProductID,
		ProfileUserID: req.ProfileUserID,
		Quantity:      req.Quantity,
		SaleDate:      time.Now().UTC(),
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}

	if err := h.Repo.Create(ctx, &sale); err != nil {
		l.Warn("create_sale_failed", "product", req.ProductID, "error", err)
		return repoError(err, "cannot create sale")
	}

	publish(c, h.Producer, "sale_events", fmt.Sprint(sale.ID), map[string]any{
		"type":      "sale_created",
		"saleID":    sale.ID,
		"productID": sale.ProductID,
		"quantity":  sale.Quantity,
	})

	l.Info("create_sale_success", "id", sale.ID)
	return c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) UpdateSale(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sale.update")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	sale := models.Sale{
		ID:            id,
		ProductID:     req.ProductID,
		ProfileUserID: req.ProfileUserID,
		Quantity:      req.Quantity,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	} else {
		// an omitted date keeps the stored timestamp
		existing, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			return repoError(err, "cannot read sale")
		}
		sale.SaleDate = existing.SaleDate
	}

	if err := h.Repo.Update(ctx, &sale); err != nil {
		l.Warn("update_sale_failed", "id", id, "error", err)
		return repoError(err, "cannot update sale")
	}

	l.Info("update_sale_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *SaleHandler) DeleteSale(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sale.delete")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		l.Warn("delete_sale_failed", "id", id, "error", err)
		return repoError(err, "cannot delete sale")
	}

	l.Info("delete_sale_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
