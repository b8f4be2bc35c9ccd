package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/middleware"
	"github.com/nijaru/yt-blog/session"
	"github.com/nijaru/yt-blog/utils"
	"github.com/nijaru/yt-blog/validation"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	MissingKey    bool
	MissingKeyMsg string
	DefaultTitle  string

	Notice  string
	Error   string
	NoTrack bool

	HasTranscript     bool
	TranscriptPreview string
	TranscriptLines   int

	HasBlog         bool
	BlogHTML        template.HTML
	BlogWords       string
	TranscriptWords string
	Model           string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	data := pageData{
		MissingKey:   !h.pipeline.CanGenerate(),
		DefaultTitle: validation.DefaultTitle,
	}
	if data.MissingKey {
		data.MissingKeyMsg = errors.MissingAPIKey("handlers.Index").Message
		h.render(w, data)
		return
	}

	// Clearing the flash writes the session back. While a run holds the
	// session the page is read-only so that run's result is not overwritten.
	locked := false
	if id, ok := sessionID(r); ok {
		var unlock func()
		if unlock, locked = h.locks.TryLock(id); locked {
			defer unlock()
		}
	}

	sess, err := h.loadSession(r.Context(), r)
	if err != nil {
		logger.WithError(err).Error("Failed to load session")
	}
	if sess != nil {
		h.fillSession(&data, sess)
		if locked && (data.Notice != "" || data.Error != "") {
			if err := h.store.Save(r.Context(), sess); err != nil {
				logger.WithError(err).WithField("session_id", sess.ID).Warn("Failed to clear flash")
			}
		}
	}

	h.render(w, data)
}

func (h *Handler) fillSession(data *pageData, sess *session.Session) {
	flash := sess.TakeFlash()
	data.Notice = flash.Notice
	data.Error = flash.Error
	data.NoTrack = flash.ErrorKind == errors.KindNoCaptions

	if sess.Transcript != nil {
		data.HasTranscript = true
		data.TranscriptPreview = utils.Preview(sess.Transcript.Text, utils.PreviewLimit)
		data.TranscriptLines = sess.Transcript.Lines
	}

	if sess.Draft != nil && sess.Transcript != nil {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(sess.Draft.Markdown), &buf); err != nil {
			h.logger.WithError(err).Warn("Markdown rendering failed, showing source")
			buf.Reset()
			buf.WriteString("<pre>" + template.HTMLEscapeString(sess.Draft.Markdown) + "</pre>")
		}
		data.HasBlog = true
		data.BlogHTML = template.HTML(buf.String())
		data.BlogWords = utils.FormatCount(utils.WordCount(sess.Draft.Markdown))
		data.TranscriptWords = utils.FormatCount(utils.WordCount(sess.Transcript.Text))
		data.Model = sess.Draft.Model
	}
}

func (h *Handler) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.logger.WithError(err).Error("Failed to render page")
		utils.HandleError(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
