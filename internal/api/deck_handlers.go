package api

import (
	"net/http"

	"github.com/vytor/lexiflash/internal/models"
)

type importDeckRequest struct {
	Entries []models.VocabularyEntry `json:"entries"`
}

type importDeckResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

// handleImportDeck queues the deck; cards appear once the job has run.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	var req importDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DeckService.ImportDeck(r.Context(), student.ID, req.Entries); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, importDeckResponse{Status: "queued", Entries: len(req.Entries)})
}
