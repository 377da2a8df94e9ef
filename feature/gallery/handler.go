package gallery

import (
	"errors"
	"net/url"

	"gallery-sync/core/errs"
	"gallery-sync/core/logger"
	"gallery-sync/feature/gallery/reconciler"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PINHeader carries the access PIN of a protected gallery.
const PINHeader = "X-Gallery-PIN"

// Handler handles HTTP requests for galleries.
type Handler struct {
	service *Service
	admin   fiber.Handler
}

// NewHandler creates a new HTTP handler. admin guards the sync routes.
func NewHandler(service *Service, admin fiber.Handler) *Handler {
	if admin == nil {
		admin = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &Handler{service: service, admin: admin}
}

// RegisterRoutes registers the gallery routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	galleries := app.Group("/galleries")
	galleries.Get("/", h.HandleListGalleries)
	galleries.Get("/:folder", h.HandleGetGallery)
	galleries.Get("/:folder/photos", h.HandleListPhotos)
	galleries.Post("/:folder/validate-pin", h.HandleValidatePIN)

	app.Get("/users/:handle/photos", h.HandleListUserPhotos)

	admin := app.Group("/admin/sync", h.admin)
	admin.Post("/", h.HandleSync)
	admin.Get("/plan", h.HandlePlan)
	admin.Get("/last", h.HandleLastSync)

	app.Get("/admin/galleries/:folder", h.admin, h.HandleGalleryDetail)
}

func param(c *fiber.Ctx, name string) (string, error) {
	v, err := url.PathUnescape(c.Params(name))
	if err != nil || v == "" {
		return "", errs.New(errs.ErrKindInvalidInput, "invalid "+name)
	}
	return v, nil
}

func status(err error) int {
	switch {
	case errors.Is(err, ErrAccessDenied):
		return fiber.StatusForbidden
	case errs.IsNotFound(err):
		return fiber.StatusNotFound
	case errs.IsInvalidInput(err), errs.IsMalformedKey(err):
		return fiber.StatusBadRequest
	case errs.IsStorageUnavailable(err), errs.IsStoreUnavailable(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(status(err)).JSON(fiber.Map{"error": err.Error()})
}

// HandleListGalleries lists galleries.
// @Summary List Galleries
// @Description Lists galleries newest first. Falls back to an on-demand sync, then to the bucket listing, when the index is empty or unreachable.
// @Tags galleries
// @Produce json
// @Success 200 {object} map[string]interface{} "Galleries with serving source"
// @Failure 503 {object} map[string]string "No source available"
// @Router /galleries [get]
func (h *Handler) HandleListGalleries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	res, err := h.service.Galleries(c.Context())
	if err != nil {
		l.Error("List galleries failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(res)
}

// HandleGetGallery returns one gallery.
// @Summary Get Gallery
// @Description Returns a gallery by folder name.
// @Tags galleries
// @Produce json
// @Param folder path string true "Gallery folder (e.g. '2026-01-05 Miku Expo')"
// @Success 200 {object} models.GalleryView "Gallery"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /galleries/{folder} [get]
func (h *Handler) HandleGetGallery(c *fiber.Ctx) error {
	folder, err := param(c, "folder")
	if err != nil {
		return fail(c, err)
	}

	g, err := h.service.Gallery(c.Context(), folder)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(g)
}

// HandleListPhotos lists the photos of a gallery.
// @Summary List Gallery Photos
// @Description Lists the photos of a gallery. Protected galleries require the X-Gallery-PIN header.
// @Tags galleries
// @Produce json
// @Param folder path string true "Gallery folder"
// @Param X-Gallery-PIN header string false "Access PIN"
// @Success 200 {object} map[string]interface{} "Photos with serving source"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 503 {object} map[string]string "No source available"
// @Router /galleries/{folder}/photos [get]
func (h *Handler) HandleListPhotos(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	folder, err := param(c, "folder")
	if err != nil {
		return fail(c, err)
	}

	res, err := h.service.Photos(c.Context(), folder, c.Get(PINHeader))
	if err != nil {
		l.Warn("List photos failed", zap.String("folder", folder), zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(res)
}

type pinRequest struct {
	PIN string `json:"pin"`
}

// HandleValidatePIN checks a gallery access PIN.
// @Summary Validate Gallery PIN
// @Description Reports whether the PIN unlocks the gallery.
// @Tags galleries
// @Accept json
// @Produce json
// @Param folder path string true "Gallery folder"
// @Param body body pinRequest true "PIN"
// @Success 200 {object} map[string]bool "Validation result"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /galleries/{folder}/validate-pin [post]
func (h *Handler) HandleValidatePIN(c *fiber.Ctx) error {
	folder, err := param(c, "folder")
	if err != nil {
		return fail(c, err)
	}
	var req pinRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Wrap(errs.ErrKindInvalidInput, "invalid body", err))
	}

	valid, err := h.service.ValidatePIN(c.Context(), folder, req.PIN)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"valid": valid})
}

// HandleListUserPhotos lists the photos tagged with a user handle.
// @Summary List User Photos
// @Description Lists photos tagged with a photographer handle across galleries.
// @Tags users
// @Produce json
// @Param handle path string true "User handle"
// @Success 200 {object} map[string]interface{} "Photos with serving source"
// @Failure 503 {object} map[string]string "No source available"
// @Router /users/{handle}/photos [get]
func (h *Handler) HandleListUserPhotos(c *fiber.Ctx) error {
	handle, err := param(c, "handle")
	if err != nil {
		return fail(c, err)
	}

	res, err := h.service.PhotosByUser(c.Context(), handle)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

// HandleSync runs a sync pass.
// @Summary Run Sync
// @Description Runs one sync pass, or joins the one in flight, and returns its result. Per-item failures are listed in errors.
// @Tags admin
// @Produce json
// @Success 200 {object} reconciler.Result "Pass result"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /admin/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Sync triggered over HTTP")

	res, err := h.service.Sync(c.Context(), reconciler.TriggerHTTP)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(res)
}

// HandlePlan previews a sync pass.
// @Summary Plan Sync
// @Description Computes the creates and deletes a pass would perform, without writing.
// @Tags admin
// @Produce json
// @Success 200 {object} reconciler.Preview "Dry-run plan"
// @Failure 503 {object} map[string]string "Storage or store unavailable"
// @Router /admin/sync/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	preview, err := h.service.Plan(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(preview)
}

// HandleLastSync returns the result of the last pass.
// @Summary Last Sync
// @Description Returns the result of the most recent completed pass.
// @Tags admin
// @Produce json
// @Success 200 {object} reconciler.Result "Pass result"
// @Failure 404 {object} map[string]string "No pass yet"
// @Router /admin/sync/last [get]
func (h *Handler) HandleLastSync(c *fiber.Ctx) error {
	res := h.service.LastSync()
	if res == nil {
		return fail(c, errs.New(errs.ErrKindNotFound, "no sync pass completed yet"))
	}
	return c.JSON(res)
}

// HandleGalleryDetail compares one gallery across the database and storage.
// @Summary Gallery Detail
// @Description Reports whether a gallery is indexed and listed, and any differences between the two.
// @Tags admin
// @Produce json
// @Param folder path string true "Gallery folder name"
// @Success 200 {object} gallery.Detail "Detail report"
// @Failure 404 {object} map[string]string "Neither indexed nor listed"
// @Failure 503 {object} map[string]string "Storage or database unavailable"
// @Router /admin/galleries/{folder} [get]
func (h *Handler) HandleGalleryDetail(c *fiber.Ctx) error {
	folder, err := param(c, "folder")
	if err != nil {
		return fail(c, err)
	}
	report, err := h.service.Detail(c.Context(), folder)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}
