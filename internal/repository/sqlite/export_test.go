package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// NewCardRepositoryWithReviewHook returns a card repository that calls hook
// after a review has read the card and before it writes the new state.
func NewCardRepositoryWithReviewHook(db *sql.DB, hook func(ctx context.Context, tx *sql.Tx, card *models.Card) error) repository.CardRepository {
	return &cardRepository{db: db, beforeReviewWrite: hook}
}
