package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/translation-api/internal/billing"
	"github.com/tesseract-hub/translation-api/internal/config"
	"github.com/tesseract-hub/translation-api/internal/engine"
	"github.com/tesseract-hub/translation-api/internal/registry"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

// TranslationHandler serves the translation API. All fields are set at
// startup and read-only afterwards; per-request state lives on the
// stack of each handler invocation.
type TranslationHandler struct {
	registry   *registry.Registry
	translator engine.Translator
	guard      translatable.SizeLimitGuard
	recorder   *billing.Recorder
	config     *config.TranslationConfig
	// backend and cache are only used for health probes; either may be
	// nil (tests, cache-less deployments)
	backend *engine.BackendClient
	cache   *engine.TranslationCache
	logger  *logrus.Entry
}

// NewTranslationHandler creates the handler.
func NewTranslationHandler(
	reg *registry.Registry,
	translator engine.Translator,
	backend *engine.BackendClient,
	cache *engine.TranslationCache,
	guard translatable.SizeLimitGuard,
	recorder *billing.Recorder,
	cfg *config.TranslationConfig,
	logger *logrus.Entry,
) *TranslationHandler {
	return &TranslationHandler{
		registry:   reg,
		translator: translator,
		backend:    backend,
		cache:      cache,
		guard:      guard,
		recorder:   recorder,
		config:     cfg,
		logger:     logger,
	}
}

// RegisterRoutes wires the API surface onto the router group.
func (h *TranslationHandler) RegisterRoutes(api *gin.RouterGroup) {
	languages := api.Group("/languages")
	{
		languages.GET("/", h.GetLanguages)
		languages.GET("/:code", h.GetLanguage)
		languages.POST("/", h.TranslatePair)
		languages.POST("/file", h.TranslatePairFile)
		languages.POST("/batch", h.TranslatePairBatch)
	}

	models := api.Group("/models")
	{
		models.GET("/", h.ListModels)
		models.GET("/:model", h.GetModel)
		models.POST("/:model", h.TranslateModel)
		models.POST("/:model/batch", h.TranslateModelBatch)
		models.POST("/:model/file", h.TranslateModelFile)
	}
}

// Health returns service health status
// GET /health
func (h *TranslationHandler) Health(c *gin.Context) {
	status := "healthy"
	checks := make(map[string]string)

	if h.backend != nil {
		if err := h.backend.HealthCheck(c.Request.Context()); err != nil {
			checks["mt_backend"] = "unhealthy: " + err.Error()
			status = "unhealthy"
		} else {
			checks["mt_backend"] = "healthy"
		}
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["redis"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status": status,
		"checks": checks,
		"models": h.registry.ModelNames(),
	})
}

// Livez returns liveness status
// GET /livez
func (h *TranslationHandler) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readyz returns readiness status
// GET /readyz
func (h *TranslationHandler) Readyz(c *gin.Context) {
	if h.backend != nil {
		if err := h.backend.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  "mt backend unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
