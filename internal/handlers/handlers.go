package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/rmitchellscott/monodither/internal/dither"
	"github.com/rmitchellscott/monodither/internal/logging"
	"github.com/rmitchellscott/monodither/internal/presets"
	"github.com/rmitchellscott/monodither/internal/version"
)

var registerValidationsOnce sync.Once

// RegisterValidations installs the custom validation tags on gin's binding
// validator. It is safe to call more than once.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logging.WarnWithComponent(logging.ComponentStartup, "Binding validator is not validator/v10; custom tags unavailable")
			return
		}
		if err := presets.RegisterValidations(v); err != nil {
			logging.ErrorWithComponent(logging.ComponentStartup, "Failed to register validations", "error", err)
		}
	})
}

// Handler serves the dithering API.
type Handler struct {
	db        *gorm.DB
	presets   *presets.Store
	maxPixels int
}

// New creates a Handler. db may be nil, which disables run history.
func New(db *gorm.DB, store *presets.Store, maxPixels int) *Handler {
	RegisterValidations()
	return &Handler{
		db:        db,
		presets:   store,
		maxPixels: maxPixels,
	}
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VersionHandler returns build information.
func VersionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

// MethodsHandler lists the registered dither methods.
func (h *Handler) MethodsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": dither.Methods()})
}

// PresetsHandler lists the configured presets.
func (h *Handler) PresetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.presets.List()})
}
