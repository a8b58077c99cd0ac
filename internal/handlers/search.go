package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/query"
	"github.com/Skotchmaster/inventory/internal/service/search"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page := query.Page{
		Number: parseIntDefault(c.QueryParam("page"), query.DefaultPageNumber),
		Size:   parseIntDefault(c.QueryParam("size"), query.DefaultPageSize),
	}

	ctx := c.Request().Context()
	total, products, err := search.Search(ctx, h.ES, h.Index, q, page.Offset(), page.Limit())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
