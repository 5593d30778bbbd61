package api

import (
	"net/http"

	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/services"
)

func writeCards(w http.ResponseWriter, r *http.Request, cards []models.Card) {
	if cards == nil {
		cards = []models.Card{}
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
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

	cards, err := s.CardService.ListCards(r.Context(), repository.CardFilter{
		StudentID: student.ID,
		Search:    r.URL.Query().Get("q"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeCards(w, r, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	var req services.CreateCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), student.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.CardService.DueCards(r.Context(), student.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeCards(w, r, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), student.ID, cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), student.ID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req services.ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.ReviewCard(r.Context(), student.ID, cardID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleResetCard(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.ResetCard(r.Context(), student.ID, cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleCardHistory(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	cardID, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	history, err := s.CardService.CardHistory(r.Context(), student.ID, cardID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if history == nil {
		history = []models.ReviewHistory{}
	}
	writeJSON(w, r, http.StatusOK, history)
}
