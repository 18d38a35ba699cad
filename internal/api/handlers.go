package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"persontable/internal/engine"
	"persontable/internal/models"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

type Settings struct {
	Mode        engine.Mode
	Options     engine.Options
	SessionTTL  time.Duration
	MaxSessions int
}

type Handler struct {
	mu    sync.RWMutex
	store *engine.ColumnStore

	settings Settings
	sessions *sessionStore
	metrics  *metrics
	registry *prometheus.Registry
	log      *logrus.Logger
}

// NewHandler accepts a nil store; data routes answer 503 until SetStore.
func NewHandler(store *engine.ColumnStore, settings Settings, log *logrus.Logger) *Handler {
	h := &Handler{
		store:    store,
		settings: settings,
		sessions: newSessionStore(settings.SessionTTL, settings.MaxSessions),
		registry: prometheus.NewRegistry(),
		log:      log,
	}
	h.metrics = newMetrics(h.registry, h.sessions.count)
	return h
}

func (h *Handler) SetStore(store *engine.ColumnStore) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = store
}

func (h *Handler) getStore() *engine.ColumnStore {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store
}

func (h *Handler) Close() error {
	return h.sessions.Close()
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api", h.requireStore)
	api.GET("/records", h.GetRecords)
	api.GET("/columns", h.GetColumns)
	api.POST("/views", h.CreateView)
	api.GET("/views/:id", h.GetView)
	api.POST("/views/:id/events", h.PostEvent)
	api.DELETE("/views/:id", h.DeleteView)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
}

func (h *Handler) requireStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.getStore() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")
		}
		return next(c)
	}
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultSize int) (int, int) {
	size, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || size <= 0 {
		size = defaultSize
	}
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	return page, size
}

// splitValues accepts both ?gender=a&gender=b and ?gender=a,b.
func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func (h *Handler) queryFromRequest(c echo.Context) engine.Query {
	page, size := getPaginationParams(c, h.settings.Options.PageSize)

	filters := models.Filters{}
	if v := c.QueryParam("name"); v != "" {
		filters[engine.ColumnName] = []string{v}
	}
	if v := c.QueryParam("id"); v != "" {
		filters[engine.ColumnID] = []string{v}
	}
	if v := splitValues(c.QueryParams()["gender"]); len(v) > 0 {
		filters[engine.ColumnGender] = v
	}

	sorter := models.Sorter{ColumnKey: c.QueryParam("sort")}
	if sorter.ColumnKey != "" {
		sorter.Order = models.SortAscend
		if o := c.QueryParam("order"); o != "" {
			sorter.Order = models.SortOrder(o)
		}
	}

	return engine.Query{
		Filters:   filters,
		Search:    c.QueryParam("q"),
		Sorter:    sorter,
		Page:      page,
		PageSize:  size,
		NameMatch: h.settings.Options.NameMatch,
	}
}

// GetRecords is the stateless view: every filter travels in the
// query string.
func (h *Handler) GetRecords(c echo.Context) error {
	q := h.queryFromRequest(c)
	data, p, err := h.getStore().Query(q)
	if err != nil {
		return badRequest(err)
	}
	h.metrics.queries.Inc()

	idVisible := h.settings.Options.ShowIDColumn
	if v, err := strconv.ParseBool(c.QueryParam("hide_id")); err == nil {
		idVisible = !v
	}

	return writeCached(c, &models.Page{
		Data:       data,
		Pagination: p,
		Columns:    engine.Columns(idVisible),
		State: models.ViewState{
			Pagination:      p,
			Filters:         q.Filters,
			Sorter:          q.Sorter,
			SearchText:      q.Search,
			AppliedSearch:   q.Search,
			IDColumnVisible: idVisible,
		},
	})
}

func (h *Handler) GetColumns(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.Columns(true))
}

// writeCached sends v as JSON with an ETag and honors If-None-Match.
func writeCached(c echo.Context, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding response")
	}
	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func badRequest(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownColumn),
		errors.Is(err, engine.ErrInvalidPageSize),
		errors.Is(err, engine.ErrInvalidSort),
		errors.Is(err, engine.ErrUnknownEvent),
		errors.Is(err, engine.ErrUnknownMode):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return err
}
