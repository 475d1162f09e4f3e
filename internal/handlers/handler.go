package handlers

import (
	"net/http"

	_ "kakeibo/docs"
	"kakeibo/internal/logger"
	"kakeibo/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes HTTP behaviour that depends on deployment.
type Options struct {
	SecureCookie bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(mustTemplates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/"+string(pageList))
	})

	h.registerPages(router)
	h.registerAPIRoutes(router)

	return router
}

// registerPages mounts every entry of the route table.
// Mutating routes check the CSRF token before anything else, including login.
func (h *Handler) registerPages(r *gin.Engine) {
	pages := r.Group("/", h.sessionMiddleware)
	for _, rt := range h.routes() {
		chain := make([]gin.HandlerFunc, 0, 3)
		if rt.mutating {
			chain = append(chain, h.csrfGuard)
		}
		if rt.requiresLogin {
			chain = append(chain, h.requireLogin)
		}
		chain = append(chain, rt.handler)
		pages.Handle(rt.method, "/"+string(rt.page), chain...)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware, h.requireLoginJSON)
	{
		api.GET("/expenses", h.listExpensesJSON)
	}
}
