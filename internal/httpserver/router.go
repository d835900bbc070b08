package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"habitflow/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	placeHandler *handler.PlaceHandler,
	actionHandler *handler.ActionHandler,
	habitHandler *handler.HabitHandler,
	jwtSecret string,
) *Router {
	r := gin.Default()
	r.Use(TraceMiddleware(), MetricsMiddleware())

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.DELETE("/account", authHandler.DeleteAccount)

		auth.POST("/places", placeHandler.Create)
		auth.GET("/places", placeHandler.List)
		auth.GET("/places/:id", placeHandler.Get)
		auth.PUT("/places/:id", placeHandler.Update)
		auth.PATCH("/places/:id", placeHandler.Update)
		auth.DELETE("/places/:id", placeHandler.Delete)

		auth.POST("/actions", actionHandler.Create)
		auth.GET("/actions", actionHandler.List)
		auth.GET("/actions/:id", actionHandler.Get)
		auth.PUT("/actions/:id", actionHandler.Update)
		auth.PATCH("/actions/:id", actionHandler.Update)
		auth.DELETE("/actions/:id", actionHandler.Delete)

		auth.POST("/habits", habitHandler.Create)
		auth.GET("/habits", habitHandler.List)
		auth.GET("/habits/public", habitHandler.ListPublic)
		auth.GET("/habits/:id", habitHandler.Get)
		auth.PUT("/habits/:id", habitHandler.Update)
		auth.PATCH("/habits/:id", habitHandler.Update)
		auth.DELETE("/habits/:id", habitHandler.Delete)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
