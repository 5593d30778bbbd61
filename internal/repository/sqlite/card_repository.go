package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

var cardColumns = []string{
	"id", "student_id", "vocabulary_id", "front", "back",
	"ease_factor", "interval_days", "repetition", "due_at",
	"version", "created_at", "last_reviewed_at",
}

var selectCard = `SELECT ` + strings.Join(cardColumns, ", ") + ` FROM cards`

type cardRepository struct {
	db *sql.DB
	// beforeReviewWrite runs inside the review transaction between reading
	// the card and the version-guarded update. Nil outside tests.
	beforeReviewWrite func(ctx context.Context, tx *sql.Tx, card *models.Card) error
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func scanCard(row rowScanner) (*models.Card, error) {
	var (
		c            models.Card
		vocabularyID sql.NullInt64
		reviewedAt   sql.NullTime
	)
	err := row.Scan(&c.ID, &c.StudentID, &vocabularyID, &c.Front, &c.Back,
		&c.EaseFactor, &c.IntervalDays, &c.Repetition, &c.DueAt,
		&c.Version, &c.CreatedAt, &reviewedAt)
	if err != nil {
		return nil, err
	}
	if vocabularyID.Valid {
		c.VocabularyID = &vocabularyID.Int64
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		c.LastReviewedAt = &t
	}
	return &c, nil
}

func scanCards(rows *sql.Rows) ([]models.Card, error) {
	defer rows.Close()
	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getCard(ctx context.Context, q querier, id int64) (*models.Card, error) {
	c, err := scanCard(q.QueryRowContext(ctx, selectCard+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", id, repository.ErrNotFound)
	}
	return c, err
}

func (r *cardRepository) Create(ctx context.Context, studentID int64, content models.CardContent, now time.Time) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("creating card: student_id=%d", studentID)

	now = utc(now)
	st := flashcard.InitialState(now)
	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (student_id, vocabulary_id, front, back, ease_factor, interval_days, repetition, due_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, studentID, content.VocabularyID, content.Front, content.Back,
		st.EaseFactor, st.IntervalDays, st.Repetition, st.DueAt, now)
	if err != nil {
		log.Warn("failed to insert card: %v", err)
		return nil, mapConstraintErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return nil, err
	}
	log.Debug("card created: id=%d", id)
	return getCard(ctx, r.db, id)
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	c, err := getCard(ctx, r.db, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to get card: %v", err)
	}
	return c, err
}

func (r *cardRepository) FetchDue(ctx context.Context, studentID int64, now time.Time, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: student_id=%d, limit=%d", studentID, limit)

	query := sqlBuilder.Select(cardColumns...).From("cards").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.LtOrEq{"due_at": utc(now)}).
		OrderBy("due_at ASC", "id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	cards, err := r.query(ctx, query)
	if err != nil {
		log.Error("failed to fetch due cards: %v", err)
		return nil, err
	}
	log.Debug("found %d due cards", len(cards))
	return cards, nil
}

func (r *cardRepository) FetchAll(ctx context.Context, studentID int64) ([]models.Card, error) {
	return r.List(ctx, repository.CardFilter{StudentID: studentID})
}

func (r *cardRepository) List(ctx context.Context, filter repository.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: student_id=%d, search=%s", filter.StudentID, filter.Search)

	query := sqlBuilder.Select(cardColumns...).From("cards").
		Where(squirrel.Eq{"student_id": filter.StudentID})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where(squirrel.Or{
			squirrel.Like{"front": p},
			squirrel.Like{"back": p},
		})
	}
	query = query.OrderBy("due_at ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	cards, err := r.query(ctx, query)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Card, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	return scanCards(rows)
}

func (r *cardRepository) CountDue(ctx context.Context, studentID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE student_id = ? AND due_at <= ?`, studentID, utc(now)).Scan(&n)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *cardRepository) ApplyReview(ctx context.Context, id int64, grade flashcard.Grade, timeSeconds float64, now time.Time) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("applying review: card_id=%d, grade=%s", id, grade)

	now = utc(now)
	var updated *models.Card
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		card, err := getCard(ctx, tx, id)
		if err != nil {
			return err
		}

		next, err := flashcard.ApplyReview(card.ReviewState, grade, now)
		if err != nil {
			return err
		}
		if r.beforeReviewWrite != nil {
			if err := r.beforeReviewWrite(ctx, tx, card); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, interval_days = ?, repetition = ?, due_at = ?, last_reviewed_at = ?, version = version + 1
WHERE id = ? AND version = ?
`, next.EaseFactor, next.IntervalDays, next.Repetition, next.DueAt, now, card.ID, card.Version)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("card %d at version %d: %w", card.ID, card.Version, repository.ErrConflict)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO review_history (card_id, grade, ease_factor, interval_days, repetition, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, card.ID, int(grade), next.EaseFactor, next.IntervalDays, next.Repetition, timeSeconds, now); err != nil {
			return err
		}

		card.ReviewState = next
		card.LastReviewedAt = &now
		card.Version++
		updated = card
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrConflict) && !errors.Is(err, flashcard.ErrInvalidGrade) {
			log.Error("failed to apply review: %v", err)
		}
		return nil, err
	}
	log.Debug("review applied: card_id=%d, interval=%d, ease=%.2f, repetition=%d",
		updated.ID, updated.IntervalDays, updated.EaseFactor, updated.Repetition)
	return updated, nil
}

func (r *cardRepository) Reset(ctx context.Context, id int64, now time.Time) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("resetting card: id=%d", id)

	st := flashcard.InitialState(utc(now))
	var reset *models.Card
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, interval_days = ?, repetition = ?, due_at = ?, last_reviewed_at = NULL, version = version + 1
WHERE id = ?
`, st.EaseFactor, st.IntervalDays, st.Repetition, st.DueAt, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("card %d: %w", id, repository.ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_history WHERE card_id = ?`, id); err != nil {
			return err
		}
		reset, err = getCard(ctx, tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("failed to reset card: %v", err)
		}
		return nil, err
	}
	return reset, nil
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("card %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *cardRepository) ReviewHistory(ctx context.Context, id int64, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching review history: card_id=%d, limit=%d", id, limit)

	query := sqlBuilder.
		Select("id", "card_id", "grade", "ease_factor", "interval_days", "repetition", "time_seconds", "reviewed_at").
		From("review_history").
		Where(squirrel.Eq{"card_id": id}).
		OrderBy("reviewed_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var history []models.ReviewHistory
	for rows.Next() {
		var h models.ReviewHistory
		if err := rows.Scan(&h.ID, &h.CardID, &h.Grade, &h.EaseFactor, &h.IntervalDays, &h.Repetition, &h.TimeSeconds, &h.ReviewedAt); err != nil {
			log.Error("failed to scan review history row: %v", err)
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
