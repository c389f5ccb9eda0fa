package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	_ "github.com/aniladanir/campaign-manager/docs"
	"github.com/aniladanir/campaign-manager/internal/cache"
	"github.com/aniladanir/campaign-manager/internal/service"
	"github.com/aniladanir/campaign-manager/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators served over HTTP. Dispatcher, Cache,
// Hub and Registry may be nil; their routes then answer 503.
type Dependencies struct {
	Catalog    *service.Catalog
	Dispatcher service.Dispatcher
	Cache      cache.Cache
	Hub        *ws.Hub
	Registry   *prometheus.Registry
	Logger     *slog.Logger
}

type Handler struct {
	catalog    *service.Catalog
	dispatcher service.Dispatcher
	cache      cache.Cache
	hub        *ws.Hub
	logger     *slog.Logger
	server     *http.Server
}

// @title Campaign Manager API
// @version 1.0
// @description Message templates, contact lists and campaign delivery tracking
// @host localhost:6060
// @BasePath /
func NewHttpHandler(addr string, deps Dependencies) *Handler {
	h := &Handler{
		catalog:    deps.Catalog,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		hub:        deps.Hub,
		logger:     deps.Logger,
	}

	h.server = &http.Server{
		Addr:    addr,
		Handler: h.routes(deps.Registry).Handler(),
	}

	return h
}

func (h *Handler) routes(registry *prometheus.Registry) *gin.Engine {
	// create router
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())

	// register routes
	router.GET("/templates", h.listTemplates)
	router.POST("/templates", h.createTemplate)
	router.GET("/templates/:id", h.getTemplate)
	router.PUT("/templates/:id", h.updateTemplate)
	router.DELETE("/templates/:id", h.deleteTemplate)
	router.POST("/templates/:id/preview", h.previewTemplate)

	router.GET("/contacts", h.listContacts)
	router.DELETE("/contacts", h.clearContacts)
	router.POST("/contacts/import", h.importContacts)
	router.GET("/contacts/export", h.exportContacts)

	router.GET("/campaigns", h.listCampaigns)
	router.POST("/campaigns", h.createCampaign)
	router.GET("/campaigns/:id", h.getCampaign)
	router.POST("/campaigns/:id/toggle", h.toggleCampaign)
	router.POST("/campaigns/:id/launch", h.launchCampaign)
	router.POST("/campaigns/:id/progress", h.applyProgress)

	router.GET("/stats", h.getStats)
	router.GET("/receipts/:messageId", h.getReceipt)

	router.POST("/start", h.startProcess)
	router.POST("/stop", h.stopProcess)
	router.GET("/status", h.processStatus)

	if h.hub != nil {
		router.GET("/ws", gin.WrapF(h.hub.ServeWs))
	}
	if registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		h.logger.Debug("request served",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()))
	}
}

func (h *Handler) Run() error {
	return h.server.ListenAndServe()
}

func (h *Handler) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// StartProcess godoc
// @Summary Start the campaign dispatcher
// @Description Starts the background process that delivers running campaigns in batches
// @Tags Control
// @Success 200
// @Failure 503 {object} errorResponse
// @Router /start [post]
func (h *Handler) startProcess(c *gin.Context) {
	if h.dispatcher == nil {
		abortUnavailable(c, "dispatcher is not configured")
		return
	}
	h.dispatcher.Start()
	c.Status(http.StatusOK)
}

// StopProcess godoc
// @Summary Stop the campaign dispatcher
// @Description Stops the background delivery process
// @Tags Control
// @Success 200
// @Failure 503 {object} errorResponse
// @Router /stop [post]
func (h *Handler) stopProcess(c *gin.Context) {
	if h.dispatcher == nil {
		abortUnavailable(c, "dispatcher is not configured")
		return
	}
	h.dispatcher.Stop()
	c.Status(http.StatusOK)
}

// ProcessStatus godoc
// @Summary Dispatcher state
// @Tags Control
// @Success 200 {object} statusResponse
// @Router /status [get]
func (h *Handler) processStatus(c *gin.Context) {
	resp := statusResponse{Configured: h.dispatcher != nil}
	if h.dispatcher != nil {
		resp.Running = h.dispatcher.IsRunning()
	}
	if h.hub != nil {
		resp.Subscribers = h.hub.ClientCount()
	}
	c.JSON(http.StatusOK, resp)
}

type statusResponse struct {
	Configured  bool `json:"configured"`
	Running     bool `json:"running"`
	Subscribers int  `json:"subscribers"`
}

// GetStats godoc
// @Summary Dashboard totals
// @Description Counts of contacts, templates and campaigns with delivery totals, computed on request
// @Tags Dashboard
// @Success 200 {object} service.Dashboard
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Dashboard())
}

// GetReceipt godoc
// @Summary Delivery receipt
// @Description Looks up a cached webhook delivery receipt by message id
// @Tags Messages
// @Param messageId path string true "webhook message id"
// @Success 200 {object} cache.Receipt
// @Failure 404 {object} errorResponse
// @Router /receipts/{messageId} [get]
func (h *Handler) getReceipt(c *gin.Context) {
	if h.cache == nil {
		abortUnavailable(c, "receipt cache is not configured")
		return
	}
	receipt, err := cache.LoadReceipt(c.Request.Context(), h.cache, c.Param("messageId"))
	if errors.Is(err, cache.ErrMiss) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "receipt not found"})
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
