package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/mykafka"
	"github.com/Skotchmaster/inventory/internal/repo"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return id, nil
}

// repoError maps the repository outcome taxonomy onto HTTP statuses:
// missing row 404, duplicate name 409, broken reference 400, anything
// else 500.
func repoError(err error, fallback string) *echo.HTTPError {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, repo.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "name already taken")
	case errors.Is(err, repo.ErrReferenceMissing):
		return echo.NewHTTPError(http.StatusBadRequest, "referenced record does not exist")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}

// publish sends an event after a successful write. The write has already
// committed, so a broker failure is logged and swallowed.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}
