package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"sjsage522/pricewatcher/internal/registry"
	"sjsage522/pricewatcher/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

type handler struct {
	registry *registry.Registry
	log      *logger.Logger
}

// NewRouter builds the dashboard HTTP handler: list tracked products, add a
// product by URL, delete a product by id. Failures never surface beyond the
// page silently reflecting unchanged state.
func NewRouter(reg *registry.Registry, environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &handler{
		registry: reg,
		log:      logger.ForDashboard(),
	}

	router := gin.New()
	router.Use(gin.Recovery())

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"money": formatMoney,
	}).ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.index)
	router.POST("/add", h.add)
	router.POST("/delete/:id", h.remove)

	return router
}

// formatMoney renders an optional price for the dashboard table.
func formatMoney(price *float64) string {
	if price == nil {
		return "—"
	}
	return fmt.Sprintf("₹%.2f", *price)
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Products": h.registry.List(),
	})
}

func (h *handler) add(c *gin.Context) {
	url := c.PostForm("url")
	if url != "" {
		if _, err := h.registry.AddProduct(c.Request.Context(), url); err != nil {
			h.log.Warn().Err(err).Str("url", url).Msg("Failed to add product")
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.registry.RemoveProduct(c.Request.Context(), id); err != nil {
		h.log.Warn().Err(err).Str("product_id", id).Msg("Failed to remove product")
	}
	c.Redirect(http.StatusSeeOther, "/")
}
