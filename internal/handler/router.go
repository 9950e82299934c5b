package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	interviewHandler "github.com/mockview/mockview/backend/internal/handler/interview"
	liveHandler "github.com/mockview/mockview/backend/internal/handler/live"
	middlewarePkg "github.com/mockview/mockview/backend/internal/middleware"
	interviewModel "github.com/mockview/mockview/backend/internal/model/interview"
	analysisService "github.com/mockview/mockview/backend/internal/service/analysis"
	feedbackService "github.com/mockview/mockview/backend/internal/service/feedback"
	sessionService "github.com/mockview/mockview/backend/internal/service/session"
	"github.com/mockview/mockview/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(sessions *sessionService.Service, analyzer *analysisService.Service, feedback *feedbackService.Service, bank *interviewModel.QuestionBank) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	apiHandler := interviewHandler.New(sessions, analyzer, feedback, bank)
	live := liveHandler.New(sessions)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		apiHandler.RegisterRoutes(api)
		live.RegisterRoutes(api)
	})

	return r
}
