package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/mykafka"
	"github.com/Skotchmaster/inventory/internal/query"
	"github.com/Skotchmaster/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/internal/service/search"
)

type ProductHandler struct {
	Repo     *repo.ProductRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryIDs []int   `json:"category_ids"`
}

func (h *ProductHandler) index(c echo.Context, product *models.Product) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexProduct(ctx, h.ES, h.Index, product); err != nil {
		logging.FromContext(ctx).Error("product_index_failed", "id", product.ID, "error", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		l.Warn("get_product_failed", "id", id, "error", err)
		return repoError(err, "cannot read product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProductByName(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_by_name")

	name := c.Param("name")
	product, err := h.Repo.GetByName(ctx, name)
	if err != nil {
		l.Warn("get_product_failed", "name", name, "error", err)
		return repoError(err, "cannot read product")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	filter := query.ProductFilter{
		Page: query.Page{
			Number: parseIntDefault(c.QueryParam("page"), query.DefaultPageNumber),
			Size:   parseIntDefault(c.QueryParam("size"), query.DefaultPageSize),
		},
	}
	if raw := c.QueryParam("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
		}
		filter.Price = &price
	}

	items, err := h.Repo.List(ctx, filter)
	if err != nil {
		l.Error("list_products_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required and price cannot be negative")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.Repo.Create(ctx, &product, req.CategoryIDs); err != nil {
		l.Warn("create_product_failed", "name", req.Name, "error", err)
		return repoError(err, "cannot create product")
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})
	h.index(c, &product)

	l.Info("create_product_success", "id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price cannot be negative")
	}

	product := models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.Repo.Update(ctx, &product, req.CategoryIDs); err != nil {
		l.Warn("update_product_failed", "id", id, "error", err)
		return repoError(err, "cannot update product")
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_updated",
		"productID": id,
		"name":      product.Name,
	})
	h.index(c, &product)

	l.Info("update_product_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(ctx, id); err != nil {
		l.Warn("delete_product_failed", "id", id, "error", err)
		return repoError(err, "cannot delete product")
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if h.ES != nil {
		if err := search.RemoveProduct(ctx, h.ES, h.Index, id); err != nil {
			l.Error("product_unindex_failed", "id", id, "error", err)
		}
	}

	l.Info("delete_product_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
