package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/middleware"
	"github.com/nijaru/yt-blog/pipeline"
	"github.com/nijaru/yt-blog/session"
	"github.com/nijaru/yt-blog/utils"
	"github.com/sirupsen/logrus"
)

type generateResponse struct {
	Transcript      string `json:"transcript"`
	TranscriptLines int    `json:"transcript_lines"`
	Blog            string `json:"blog"`
	Model           string `json:"model"`
}

// Generate runs the pipeline for the form submission and redirects back to
// the page, which shows the outcome stored in the session.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.Generate"
	logger := middleware.GetLogger(r.Context())

	if !h.pipeline.CanGenerate() {
		utils.RespondWithError(w, errors.MissingAPIKey(op))
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.RespondWithError(w, errors.InvalidInput(op, err, "Invalid form submission"))
		return
	}

	sess, err := h.loadSession(r.Context(), r)
	if err != nil {
		logger.WithError(err).Error("Failed to load session")
		utils.RespondWithError(w, err)
		return
	}
	if sess == nil {
		sess = session.New()
	}
	logger = logger.WithField("session_id", sess.ID)

	unlock, ok := h.locks.TryLock(sess.ID)
	if !ok {
		utils.HandleError(w, "A blog is already being generated for this session", http.StatusConflict)
		return
	}
	defer unlock()

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.pipeline.Run(ctx, pipeline.Request{
		URL:   r.PostFormValue("url"),
		Title: r.PostFormValue("title"),
	})
	if err != nil {
		logger.WithError(err).WithField("kind", errors.KindOf(err)).Warn("Generation failed")
		sess.Fail(err)
	} else {
		sess.Succeed(result.Transcript, result.Draft, successNotice(result))
		logger.WithFields(logrus.Fields{
			"lines":       result.Transcript.Lines,
			"tokens_used": result.Draft.TokensUsed,
		}).Info("Blog stored in session")
	}

	if err := h.store.Save(r.Context(), sess); err != nil {
		logger.WithError(err).Error("Failed to save session")
		utils.RespondWithError(w, err)
		return
	}

	h.setSessionCookie(w, sess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func successNotice(result *pipeline.Result) string {
	return fmt.Sprintf("Transcript extracted! (%d segments) Blog generated from transcript!", result.Transcript.Lines)
}

// APIGenerate is the JSON form of Generate. It keeps no session state.
func (h *Handler) APIGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.APIGenerate"

	if !h.pipeline.CanGenerate() {
		utils.RespondWithError(w, errors.MissingAPIKey(op))
		return
	}

	var req pipeline.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		utils.RespondWithError(w, errors.InvalidInput(op, err, "Invalid JSON body"))
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.pipeline.Run(ctx, req)
	if err != nil {
		utils.RespondWithErrorCause(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, generateResponse{
		Transcript:      result.Transcript.Text,
		TranscriptLines: result.Transcript.Lines,
		Blog:            result.Draft.Markdown,
		Model:           result.Draft.Model,
	})
}

// Download serves the session's blog as a markdown attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.Download"

	sess, err := h.loadSession(r.Context(), r)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	if sess == nil || sess.Draft == nil {
		utils.RespondWithError(w, errors.NotFound(op, nil, "No blog to download"))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadFilename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sess.Draft.Markdown))
}
