package api

import (
	"net/http"

	"github.com/vytor/lexiflash/internal/models"
)

func (s *Server) handleListVocabulary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := s.VocabularyService.ListVocabulary(r.Context(), models.VocabularyFilter{
		Language: q.Get("language"),
		Level:    q.Get("level"),
		Search:   q.Get("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleCreateVocabulary(w http.ResponseWriter, r *http.Request) {
	var entry models.VocabularyEntry
	if err := decodeJSON(w, r, &entry); err != nil {
		handleError(w, r, err)
		return
	}

	stored, err := s.VocabularyService.AddVocabulary(r.Context(), entry)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, stored)
}

func (s *Server) handleGetVocabulary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	entry, err := s.VocabularyService.GetVocabulary(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entry)
}
