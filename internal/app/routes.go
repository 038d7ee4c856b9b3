package app

import (
	"net/http"

	"Catalog/internal/cache"
	"Catalog/internal/config"
	"Catalog/internal/handlers"
	"Catalog/internal/logger"
	"Catalog/internal/repo"
	"Catalog/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine. courseCache may be nil.
func Setup(r *gin.Engine, cfg config.Config, log *logger.Logger, courses repo.CourseRepo, courseCache *cache.CourseCache) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/courses") })
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	courseSvc := service.NewCourseService(courses, courseCache, log.With("component", "service"))
	courseHandler := handlers.NewCourseHandler(courseSvc, log)
	pageHandler := handlers.NewPageHandler()

	registerPageRoutes(r, pageHandler, courseHandler)
	registerAPIRoutes(r.Group("/api"), courseHandler)
	r.NoRoute(pageHandler.NotFound)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "API documentation is unavailable"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerPageRoutes(r *gin.Engine, p *handlers.PageHandler, h *handlers.CourseHandler) {
	r.GET("/courses", p.Courses)
	r.GET("/courses/new", p.NewCourse)
	r.POST("/courses", h.Create)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.CourseHandler) {
	api.GET("/categories", h.Categories)
	api.GET("/courses", h.List)
	api.GET("/courses/:id", h.GetByID)
	api.PUT("/courses/:id", h.Update)
	api.DELETE("/courses/:id", h.Deactivate)
}
