package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// SetupRoutes registers the page routes and installs the templates on r.
func SetupRoutes(r *gin.Engine, h Handler) error {
	templates, err := LoadTemplates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(templates)

	r.GET("/", h.Index)
	r.POST("/ui/:section", h.Submit)
	r.GET("/ui/download/:artifact", h.Download)
	return nil
}
