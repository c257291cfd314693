package countries

import (
	"errors"
	"fmt"
	"time"

	"country-catalog/core/errs"
	"country-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the country catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/countries")
	group.Post("/refresh", h.HandleRefresh)
	// /image must precede /:name to avoid being captured by the wildcard.
	group.Get("/image", h.HandleSummaryReport)
	group.Get("", h.HandleList)
	group.Get("/:name", h.HandleGetByName)
	group.Delete("/:name", h.HandleDeleteByName)

	app.Get("/status", h.HandleStatus)
}

// RefreshResponse is the payload returned by a successful refresh.
type RefreshResponse struct {
	Message          string     `json:"message"`
	CountriesAdded   int        `json:"countries_added"`
	CountriesUpdated int        `json:"countries_updated"`
	LastRefreshedAt  *time.Time `json:"last_refreshed_at"`
}

// HandleRefresh fetches both external feeds and reconciles them into the catalog.
// @Summary Refresh catalog
// @Description Fetch all countries and exchange rates, reconcile them into the catalog, and schedule summary regeneration.
// @Tags countries
// @Produce json
// @Success 200 {object} RefreshResponse "Refresh summary"
// @Failure 503 {object} map[string]string "External data source unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Refresh(c.Context())
	if err != nil {
		l.Error("Catalog refresh failed", zap.Error(err))
		return h.mapError(c, err)
	}

	stats, err := h.service.Stats(c.Context())
	if err != nil {
		l.Error("Post-refresh stats failed", zap.Error(err))
		return h.mapError(c, err)
	}

	return c.JSON(RefreshResponse{
		Message:          "Countries data refreshed successfully",
		CountriesAdded:   result.Added,
		CountriesUpdated: result.Updated,
		LastRefreshedAt:  stats.LastRefreshedAt,
	})
}

// HandleList lists catalog entries with optional filtering and sorting.
// @Summary List countries
// @Description List catalog entries with optional region/currency filters, sorting, and paging.
// @Tags countries
// @Produce json
// @Param region query string false "Filter by region (e.g. Africa)"
// @Param currency query string false "Filter by currency code (e.g. NGN)"
// @Param sort query string false "Sort token (name_asc, name_desc, population_asc, population_desc, gdp_asc, gdp_desc)"
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Records to return (max 1000)" default(100)
// @Success 200 {array} models.Country "Countries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := ListOptions{
		Region:   c.Query("region"),
		Currency: c.Query("currency"),
		Sort:     c.Query("sort"),
		Skip:     c.QueryInt("skip", 0),
		Limit:    c.QueryInt("limit", defaultListLimit),
	}

	countries, err := h.service.List(c.Context(), opts)
	if err != nil {
		l.Error("Country listing failed", zap.Error(err))
		return h.mapError(c, err)
	}
	return c.JSON(countries)
}

// HandleGetByName returns one catalog entry by name.
// @Summary Get country
// @Description Get one country by case-insensitive name.
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} models.Country "Country"
// @Failure 404 {object} map[string]string "Country not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/{name} [get]
func (h *Handler) HandleGetByName(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	country, err := h.service.GetByName(c.Context(), c.Params("name"))
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			l.Error("Country lookup failed", zap.Error(err))
		}
		return h.mapError(c, err)
	}
	return c.JSON(country)
}

// HandleDeleteByName deletes one catalog entry by name.
// @Summary Delete country
// @Description Delete one country by case-insensitive name.
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 404 {object} map[string]string "Country not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /countries/{name} [delete]
func (h *Handler) HandleDeleteByName(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	found, err := h.service.DeleteByName(c.Context(), name)
	if err != nil {
		l.Error("Country deletion failed", zap.Error(err))
		return h.mapError(c, err)
	}
	if !found {
		return h.mapError(c, errs.ErrNotFound)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Country '%s' deleted successfully", name),
	})
}

// HandleStatus reports the total entry count and the last refresh timestamp.
// @Summary Catalog status
// @Description Show total countries and last refresh timestamp.
// @Tags status
// @Produce json
// @Success 200 {object} models.Stats "Catalog statistics"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats(c.Context())
	if err != nil {
		l.Error("Status query failed", zap.Error(err))
		return h.mapError(c, err)
	}
	return c.JSON(stats)
}

// HandleSummaryReport serves the generated summary artifact.
// @Summary Summary report
// @Description Serve the summary report generated after the most recent refresh.
// @Tags countries
// @Produce json
// @Success 200 {object} report.Summary "Summary report"
// @Failure 404 {object} map[string]string "Summary report not found"
// @Router /countries/image [get]
func (h *Handler) HandleSummaryReport(c *fiber.Ctx) error {
	data, err := h.service.SummaryReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Summary report not found",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// mapError translates the error taxonomy into HTTP statuses: upstream feed
// failures become 503, misses become 404, everything else is a 500.
func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	var srcErr *errs.ExternalSourceError
	if errors.As(err, &srcErr) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "External data source unavailable",
			"details": fmt.Sprintf("Could not fetch data from %s API", srcErr.Source),
		})
	}
	if errors.Is(err, errs.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Country not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
