package main

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/meikuraledutech/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type server struct {
	store   pipeline.HistoryStore // nil when history is disabled
	logger  *zap.Logger
	metrics *metrics
}

// newApp wires middleware and routes. store may be nil, in which case the
// history and schema routes are not mounted.
func newApp(cfg *Config, logger *zap.Logger, store pipeline.HistoryStore, reg *prometheus.Registry) *fiber.App {
	s := &server{
		store:   store,
		logger:  logger,
		metrics: newMetrics(reg),
	}

	app := fiber.New(fiber.Config{
		AppName:   "pipeline-validator",
		BodyLimit: cfg.BodyLimit,
	})

	app.Use(recoverer.New())
	app.Use(requestid.New())
	app.Use(requestLogger(logger))
	app.Use(s.metrics.middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Pipeline Parser API is running"})
	})
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.EnableMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// ── Validation ────────────────────────────────────────────────────
	app.Post("/pipelines/parse", s.parsePipeline)

	if store == nil {
		return app
	}

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := store.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := store.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── History ───────────────────────────────────────────────────────
	app.Get("/pipelines/validations", s.listValidations)
	app.Get("/pipelines/validations/summary", s.summarizeValidations)
	app.Get("/pipelines/validations/:id", s.getValidation)
	app.Delete("/pipelines/validations/:id", s.deleteValidation)

	return app
}

func (s *server) parsePipeline(c fiber.Ctx) error {
	var req pipelineRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := validateStruct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	p := req.toPipeline()
	res := p.Validate()
	s.metrics.observeResult(res)

	if s.store != nil {
		// The verdict is returned even when it cannot be recorded.
		rec := pipeline.NewRecord(requestid.FromContext(c), res)
		if _, err := s.store.SaveValidation(c.Context(), rec); err != nil {
			s.logger.Error("record validation", zap.Error(err), zap.String("requestID", rec.RequestID))
		}
	}

	return c.JSON(res)
}

func (s *server) listValidations(c fiber.Ctx) error {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxListLimit {
			return c.Status(400).JSON(fiber.Map{"error": "limit must be between 1 and " + strconv.Itoa(maxListLimit)})
		}
		limit = n
	}

	records, err := s.store.ListValidations(c.Context(), limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

func (s *server) summarizeValidations(c fiber.Ctx) error {
	sum, err := s.store.Summarize(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sum)
}

func (s *server) getValidation(c fiber.Ctx) error {
	rec, err := s.store.GetValidation(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if rec == nil {
		return c.Status(404).JSON(fiber.Map{"error": "validation not found"})
	}
	return c.JSON(rec)
}

func (s *server) deleteValidation(c fiber.Ctx) error {
	err := s.store.DeleteValidation(c.Context(), c.Params("id"))
	if errors.Is(err, pipeline.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "validation not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(204)
}
