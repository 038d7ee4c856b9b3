package handlers

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed pages/*.html
var pages embed.FS

const htmlContentType = "text/html; charset=utf-8"

// PageHandler serves the static HTML pages. The pages talk to the JSON API.
type PageHandler struct{}

func NewPageHandler() *PageHandler { return &PageHandler{} }

// Courses serves the listing page.
func (h *PageHandler) Courses(c *gin.Context) { servePage(c, http.StatusOK, "courses.html") }

// NewCourse serves the registration form.
func (h *PageHandler) NewCourse(c *gin.Context) { servePage(c, http.StatusOK, "new.html") }

// NotFound serves the generic 404 page for unmatched routes.
func (h *PageHandler) NotFound(c *gin.Context) { servePage(c, http.StatusNotFound, "404.html") }

func servePage(c *gin.Context, status int, name string) {
	b, err := pages.ReadFile("pages/" + name)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Data(status, htmlContentType, b)
}
