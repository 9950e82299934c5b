// Package interview exposes the rehearsal API over HTTP: session lifecycle,
// answer uploads, feedback and exports.
package interview

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mockview/mockview/backend/internal/model/interview"
	analysisService "github.com/mockview/mockview/backend/internal/service/analysis"
	feedbackService "github.com/mockview/mockview/backend/internal/service/feedback"
	sessionService "github.com/mockview/mockview/backend/internal/service/session"
	"github.com/mockview/mockview/backend/pkg/utils"
)

// maxUploadBytes bounds one answer upload (audio plus optional video).
const maxUploadBytes = 64 << 20

// Handler serves the interview endpoints.
type Handler struct {
	sessions *sessionService.Service
	analyzer *analysisService.Service
	feedback *feedbackService.Service
	bank     *interview.QuestionBank
}

// New creates the interview handler.
func New(sessions *sessionService.Service, analyzer *analysisService.Service, feedback *feedbackService.Service, bank *interview.QuestionBank) *Handler {
	return &Handler{
		sessions: sessions,
		analyzer: analyzer,
		feedback: feedback,
		bank:     bank,
	}
}

// RegisterRoutes mounts the interview endpoints on the API router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/interview/start", h.handleStart)
	r.Post("/interview/{sessionID}/answer", h.handleAnswer)
	r.Post("/interview/{sessionID}/skip", h.handleSkip)
	r.Get("/feedback/{sessionID}", h.handleFeedback)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Get("/session/{sessionID}/progress", h.handleProgress)
	r.Get("/export/{sessionID}", h.handleExport)
	r.Get("/roles", h.handleRoles)
	r.Get("/experience-levels", h.handleLevels)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Role            string `json:"role"`
		ExperienceLevel string `json:"experienceLevel"`
		QuestionCount   int    `json:"questionCount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Role == "" {
		payload.Role = interview.DefaultRole
	}
	if payload.ExperienceLevel == "" {
		payload.ExperienceLevel = interview.DefaultExperienceLevel
	}

	sess, err := h.sessions.Create(r.Context(), payload.Role, payload.ExperienceLevel, payload.QuestionCount)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, sess)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	questionIndex, err := strconv.Atoi(r.FormValue("questionIndex"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "questionIndex form field is required")
		return
	}

	audioBytes, err := readFormFile(r, "audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "audio file is required")
		return
	}

	videoBytes, err := readFormFile(r, "video")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		utils.RespondError(w, http.StatusBadRequest, "video file could not be read")
		return
	}

	record, sess, err := h.analyzer.ProcessAnswer(r.Context(), sessionID, questionIndex, audioBytes, videoBytes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"answer":   record,
		"progress": sess.Progress(),
		"status":   sess.Status,
	})
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	record, err := h.sessions.SkipCurrent(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sess, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"answer":   record,
		"progress": sess.Progress(),
		"status":   sess.Status,
	})
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	force := r.URL.Query().Get("recompute") == "true"

	fb, err := h.feedback.Get(r.Context(), sessionID, force)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, fb)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sess.Progress())
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=session-"+sess.ID+".json")
	utils.RespondJSONIndented(w, http.StatusOK, sess)
}

func (h *Handler) handleRoles(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"roles": h.bank.Roles()})
}

func (h *Handler) handleLevels(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"experienceLevels": h.bank.ExperienceLevels()})
}

// readFormFile reads one uploaded file fully into memory. A missing part
// surfaces as http.ErrMissingFile so optional uploads can be told apart from
// broken ones.
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, sessionService.ErrInvalidTransition):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, analysisService.ErrEmptyAudio):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
