package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	if s.RequestTimeout > 0 {
		r.Use(timeoutMiddleware(s.RequestTimeout))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNoRoute)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/students", func(r chi.Router) {
		r.Get("/", s.handleListStudents)
		r.Post("/", s.handleCreateStudent)

		r.Route("/{studentID}", func(r chi.Router) {
			r.Use(s.studentMiddleware)
			r.Get("/", s.handleGetStudent)
			r.Delete("/", s.handleDeleteStudent)
			r.Get("/stats", s.handleStudentStats)
			r.Post("/decks/import", s.handleImportDeck)

			r.Route("/cards", func(r chi.Router) {
				r.Get("/", s.handleListCards)
				r.Post("/", s.handleCreateCard)
				r.Get("/due", s.handleDueCards)
				r.Get("/{cardID}", s.handleGetCard)
				r.Delete("/{cardID}", s.handleDeleteCard)
				r.Post("/{cardID}/review", s.handleReviewCard)
				r.Post("/{cardID}/reset", s.handleResetCard)
				r.Get("/{cardID}/history", s.handleCardHistory)
			})
		})
	})

	r.Route("/vocabulary", func(r chi.Router) {
		r.Get("/", s.handleListVocabulary)
		r.Post("/", s.handleCreateVocabulary)
		r.Get("/{id}", s.handleGetVocabulary)
	})

	return r
}
