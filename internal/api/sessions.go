package api

import (
	"net/http"
	"sync"
	"time"

	"persontable/internal/engine"
	"persontable/internal/models"

	"github.com/Velocidex/ttlcache/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// session is one remote TableView. Events on a session are serialized.
type session struct {
	mu   sync.Mutex
	mode engine.Mode
	view engine.View
}

type sessionStore struct {
	lru *ttlcache.Cache
}

func newSessionStore(ttl time.Duration, max int) *sessionStore {
	result := &sessionStore{lru: ttlcache.NewCache()}
	if ttl > 0 {
		_ = result.lru.SetTTL(ttl)
	}
	if max > 0 {
		result.lru.SetCacheSizeLimit(max)
	}
	return result
}

func (s *sessionStore) add(sess *session) (string, error) {
	id := uuid.NewString()
	return id, s.lru.Set(id, sess)
}

func (s *sessionStore) get(id string) (*session, bool) {
	v, err := s.lru.Get(id)
	if err != nil {
		return nil, false
	}
	sess, ok := v.(*session)
	return sess, ok
}

func (s *sessionStore) remove(id string) bool {
	return s.lru.Remove(id) == nil
}

func (s *sessionStore) count() int {
	return s.lru.Count()
}

func (s *sessionStore) Close() error {
	return s.lru.Close()
}

type createViewRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) CreateView(c echo.Context) error {
	req := createViewRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}

	mode := h.settings.Mode
	if req.Mode != "" {
		m, err := engine.ParseMode(req.Mode)
		if err != nil {
			return badRequest(err)
		}
		mode = m
	}

	view, err := engine.NewView(mode, h.getStore(), h.settings.Options)
	if err != nil {
		return badRequest(err)
	}
	page, err := view.Page()
	if err != nil {
		return err
	}

	id, err := h.sessions.add(&session{mode: mode, view: view})
	if err != nil {
		return err
	}
	h.log.WithFields(logrus.Fields{"session": id, "mode": mode}).Debug("view created")

	return c.JSON(http.StatusCreated, &models.Session{ID: id, Mode: string(mode), Page: page})
}

func (h *Handler) lookup(c echo.Context) (*session, error) {
	sess, ok := h.sessions.get(c.Param("id"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "no such view")
	}
	return sess, nil
}

func (h *Handler) GetView(c echo.Context) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	page, err := sess.view.Page()
	sess.mu.Unlock()
	if err != nil {
		return err
	}
	return writeCached(c, &models.Session{ID: c.Param("id"), Mode: string(sess.mode), Page: page})
}

func (h *Handler) PostEvent(c echo.Context) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	ev := models.Event{}
	if err := c.Bind(&ev); err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := engine.Dispatch(sess.view, ev); err != nil {
		typ := string(ev.Type)
		if errors.Is(err, engine.ErrUnknownEvent) {
			// the type label comes from the client; keep its cardinality fixed
			typ = "unknown"
		}
		h.metrics.events.WithLabelValues(typ, "error").Inc()
		return badRequest(err)
	}
	h.metrics.events.WithLabelValues(string(ev.Type), "ok").Inc()

	page, err := sess.view.Page()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &models.Session{ID: c.Param("id"), Mode: string(sess.mode), Page: page})
}

func (h *Handler) DeleteView(c echo.Context) error {
	if !h.sessions.remove(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "no such view")
	}
	return c.NoContent(http.StatusNoContent)
}
