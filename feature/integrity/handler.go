package integrity

import (
	"gallery-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
	admin   fiber.Handler
}

// NewHandler creates a new HTTP handler. admin guards every route.
func NewHandler(service *Service, admin fiber.Handler) *Handler {
	if admin == nil {
		admin = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &Handler{service: service, admin: admin}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity", h.admin)
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/records", h.HandleRecordsCheck)
}

func errorReport(err error) fiber.Map {
	return fiber.Map{"status": "error", "error": err.Error()}
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Checks storage reachability, the database schema and record counts.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if r, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = errorReport(err)
	} else {
		report["storage"] = r
	}

	if r, err := h.service.CheckSchema(ctx); err != nil {
		report["schema"] = errorReport(err)
	} else {
		report["schema"] = r
	}

	if r, err := h.service.CountRecords(ctx); err != nil {
		report["records"] = errorReport(err)
	} else {
		report["records"] = r
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the base path.
// @Summary Check Storage
// @Description Checks that the bucket exists and the base path holds objects. Optionally creates the base path.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the base path when missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.BasePathPresent && fix {
		l.Info("Creating missing base path", zap.String("path", report.BasePath))
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create base path",
				"details": err.Error(),
			})
		}
		report.BasePathPresent = true
		report.Status = "fixed"
	}
	return c.JSON(report)
}

// HandleSchemaCheck checks the database schema.
// @Summary Check Schema
// @Description Checks that the galleries, users and photos tables match the models.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleRecordsCheck counts records.
// @Summary Count Records
// @Description Counts the rows of the gallery tables and lists missing tables.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.RecordsReport "Records Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/records [get]
func (h *Handler) HandleRecordsCheck(c *fiber.Ctx) error {
	report, err := h.service.CountRecords(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
