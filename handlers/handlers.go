package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/middleware"
	"github.com/nijaru/yt-blog/pipeline"
	"github.com/nijaru/yt-blog/session"
	"github.com/nijaru/yt-blog/utils"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	sessionCookie    = "yt_blog_session"
	downloadFilename = "transcript_blog.md"
)

type Options struct {
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	SecureCookies  bool
}

type Handler struct {
	pipeline *pipeline.Service
	store    session.Store
	locks    *session.Locks
	markdown goldmark.Markdown
	options  Options
	logger   *logrus.Logger
}

func New(p *pipeline.Service, store session.Store, options Options, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		pipeline: p,
		store:    store,
		locks:    &session.Locks{},
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		options:  options,
		logger:   logger,
	}
}

// Routes builds the full HTTP surface. limiter guards the two generate
// endpoints only.
func (h *Handler) Routes(limiter middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Index)
	mux.Handle("POST /generate", limiter.Middleware(http.HandlerFunc(h.Generate)))
	mux.HandleFunc("GET /download", h.Download)
	mux.Handle("POST /api/generate", limiter.Middleware(http.HandlerFunc(h.APIGenerate)))
	mux.HandleFunc("GET /health", h.Health)

	return middleware.Chain(mux,
		middleware.Logging(h.logger),
		middleware.Recovery(h.logger),
	)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// loadSession returns the cookie's session, or nil when there is none or it
// has expired.
func (h *Handler) loadSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	id, ok := sessionID(r)
	if !ok {
		return nil, nil
	}

	sess, err := h.store.Get(ctx, id)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return sess, err
}

// sessionID is the well-formed session id carried by the request cookie.
func sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || !session.ValidID(cookie.Value) {
		return "", false
	}
	return cookie.Value, true
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(h.options.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.options.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.options.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.options.RequestTimeout)
}
