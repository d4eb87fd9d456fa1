package api

import (
	"errors"
	"time"

	"enviro-dashboard/internal/config"
	"enviro-dashboard/internal/models"
	"enviro-dashboard/internal/observability"
	"enviro-dashboard/internal/scheduler"
	"enviro-dashboard/internal/services"
	"enviro-dashboard/internal/store"
	"enviro-dashboard/internal/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

type Handler struct {
	store   *store.StationStore
	advisor *services.Advisor
	sweeper *scheduler.Sweeper
	metrics *observability.Metrics
	cfg     *config.Config
	logger  *zap.Logger
}

func NewHandler(st *store.StationStore, advisor *services.Advisor, sweeper *scheduler.Sweeper, metrics *observability.Metrics, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		store:   st,
		advisor: advisor,
		sweeper: sweeper,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

// GetDashboard handles GET / and serves the map + assistant page.
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	data := &web.DashboardData{
		Title:     "Environmental Station Dashboard",
		CenterLat: h.cfg.Map.CenterLat,
		CenterLon: h.cfg.Map.CenterLon,
		Zoom:      h.cfg.Map.Zoom,
	}

	if err := web.RenderDashboard(c, data); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render dashboard")
	}
	return nil
}

// GetStations handles GET /api/v1/stations
func (h *Handler) GetStations(c *fiber.Ctx) error {
	return c.JSON(h.store.List())
}

// GetStation handles GET /api/v1/stations/:id
func (h *Handler) GetStation(c *fiber.Ctx) error {
	station, err := h.store.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Station not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load station",
		})
	}
	return c.JSON(station)
}

// IngestReading handles POST /api/v1/stations/:id/readings
func (h *Handler) IngestReading(c *fiber.Ctx) error {
	id := c.Params("id")

	var input models.ReadingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reading payload",
		})
	}

	if err := validate.Struct(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Reading failed validation",
			"details": err.Error(),
		})
	}

	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	reading := models.Reading{
		Timestamp:   timestamp,
		Temperature: input.Temperature,
		Emissions:   input.Emissions,
		Noise:       input.Noise,
	}

	if err := h.store.SetReading(id, reading); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Station not found",
			})
		}
		h.logger.Error("Failed to store reading",
			zap.String("station", id),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store reading",
		})
	}

	h.metrics.ReadingsIngested.Inc()
	h.logger.Info("Reading ingested", zap.String("station", id))

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":  "accepted",
		"station": id,
	})
}

// Analyze handles POST /api/v1/analyze. It always answers 200 with a
// results body; remote analysis failures resolve to the local fallback, not
// to an error response.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	stations := h.store.List()

	h.logger.Info("Running analysis", zap.Int("stations", len(stations)))

	result := h.advisor.Analyze(c.Context(), stations)
	return c.JSON(result)
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
		"stations":  h.store.Count(),
	})
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"store":     h.store.GetStats(),
		"advisor":   h.advisor.GetStats(),
		"sweeper":   h.sweeper.GetStatus(),
		"timestamp": time.Now(),
	})
}

var startTime = time.Now()
