package handlers

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/jsamuelsen/learning-journal/internal/adapters/http/dto"
)

const (
	contentTypeJavaScript = "application/javascript"
	contentTypeJSON       = "application/json"
)

// PageData is passed to every page template.
type PageData struct {
	Page    string
	Version string
}

// PagesHandler serves the HTML pages, the PWA files and the raw data file.
type PagesHandler struct {
	pages    map[string]*template.Template
	static   fs.FS
	dataFile string
	version  string
}

// PagesConfig holds the dependencies of PagesHandler.
type PagesConfig struct {
	// Pages maps a page name to its parsed template set. "index" is required;
	// it doubles as the not-found page.
	Pages map[string]*template.Template

	// Static is the asset tree served under /static. It must contain
	// manifest.json and js/sw.js.
	Static fs.FS

	// DataFile is the path of the reflections file exposed read-only at
	// /backend/reflections.json.
	DataFile string

	Version string
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(cfg PagesConfig) *PagesHandler {
	return &PagesHandler{
		pages:    cfg.Pages,
		static:   cfg.Static,
		dataFile: cfg.DataFile,
		version:  cfg.Version,
	}
}

// Page returns a handler rendering the named page with 200.
func (h *PagesHandler) Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, name)
	}
}

// NotFound renders the home page with 404.
func (h *PagesHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "index")
}

func (h *PagesHandler) render(c *gin.Context, status int, name string) {
	c.Render(status, render.HTML{
		Template: h.pages[name],
		Name:     "layout",
		Data:     PageData{Page: name, Version: h.version},
	})
}

// Manifest handles GET /manifest.json
func (h *PagesHandler) Manifest(c *gin.Context) {
	h.asset(c, "manifest.json", contentTypeJSON)
}

// ServiceWorker handles GET /sw.js. It is served from the root so its scope
// covers the whole site.
func (h *PagesHandler) ServiceWorker(c *gin.Context) {
	h.asset(c, "js/sw.js", contentTypeJavaScript)
}

func (h *PagesHandler) asset(c *gin.Context, name, contentType string) {
	data, err := fs.ReadFile(h.static, name)
	if err != nil {
		dto.HandleError(c, err, dto.MessageInternal)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// DataFile handles GET /backend/reflections.json. The file is returned
// as stored; before the first save the response is an empty array.
func (h *PagesHandler) DataFile(c *gin.Context) {
	data, err := os.ReadFile(h.dataFile)
	if errors.Is(err, fs.ErrNotExist) {
		c.Data(http.StatusOK, contentTypeJSON, []byte("[]"))
		return
	}

	if err != nil {
		dto.HandleError(c, err, dto.MessageLoadFailed)
		return
	}

	c.Data(http.StatusOK, contentTypeJSON, data)
}

// RegisterPageRoutes registers pages, assets and the not-found fallback.
func (h *PagesHandler) RegisterPageRoutes(engine *gin.Engine) {
	engine.GET("/", h.Page("index"))
	engine.GET("/journal", h.Page("journal"))
	engine.GET("/projects", h.Page("projects"))
	engine.GET("/about", h.Page("about"))

	engine.GET("/manifest.json", h.Manifest)
	engine.GET("/sw.js", h.ServiceWorker)
	engine.GET("/backend/reflections.json", h.DataFile)
	engine.StaticFS("/static", http.FS(h.static))

	engine.NoRoute(h.NotFound)
}
