package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/SparrowZheyuan18/expert-annotator/config"
	"github.com/SparrowZheyuan18/expert-annotator/internal/store"
	"github.com/SparrowZheyuan18/expert-annotator/internal/suggest"
	"github.com/SparrowZheyuan18/expert-annotator/provider"
)

// Extension pages and local dev servers are the only callers.
var allowedOrigins = []string{
	"http://localhost",
	"http://127.0.0.1",
	"http://127.0.0.1:8000",
}

// New assembles the echo instance with all routes registered. Split from Run
// so tests can drive handlers against an in-memory listener.
func New(st *store.Store, gen *suggest.Generator, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			if strings.HasPrefix(origin, "chrome-extension://") || strings.HasPrefix(origin, "moz-extension://") {
				return true, nil
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true, nil
				}
			}
			return false, nil
		},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{OK: true, Service: "expert-annotator", Version: "0.2.0"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	sh := &SessionsHandler{Store: st}
	sh.Register(e)
	dh := &DocumentsHandler{Store: st}
	dh.Register(e)
	hh := &HighlightsHandler{Store: st}
	hh.Register(e)
	jh := &JournalHandler{Store: st}
	jh.Register(e)
	ah := &SuggestionsHandler{Generator: gen}
	ah.Register(e)
	xh := &ExportHandler{Store: st}
	xh.Register(e)

	return e
}

// Run wires the store, the suggestion pipeline and the provider from config
// and serves until the listener fails.
func Run(cfg *appconfig.Config) error {
	st, err := store.Open(cfg.Storage.SQLite.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	httpLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	suggestLogger := log.New(log.Writer(), "[SUGGEST] ", log.LstdFlags)

	var llm provider.Provider
	pc := cfg.Providers.OpenRouter
	client := provider.OpenRouter
	if cfg.Suggest.Provider == string(provider.OpenAI) {
		pc = cfg.Providers.OpenAI
		client = provider.OpenAI
	}
	llm, err = provider.New(client, provider.Options{
		APIKey:  pc.APIKey,
		BaseURL: pc.BaseURL,
		Model:   pc.Model,
		Timeout: cfg.Suggest.Timeout,
	})
	if err != nil {
		// No key just means the pipeline skips the provider stage.
		suggestLogger.Printf("provider %s disabled: %v", client, err)
		llm = nil
	}

	gen := suggest.NewGenerator(cfg.Forward.URL, llm, cfg.Suggest.Count, cfg.Suggest.Timeout, suggestLogger)

	e := New(st, gen, httpLogger)
	return e.Start(cfg.General.Listen)
}
