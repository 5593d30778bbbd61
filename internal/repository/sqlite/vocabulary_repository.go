package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

var vocabularyColumns = []string{"id", "term", "translation", "language", "level", "example", "created_at"}

type vocabularyRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func scanVocabulary(row rowScanner) (*models.VocabularyEntry, error) {
	var e models.VocabularyEntry
	if err := row.Scan(&e.ID, &e.Term, &e.Translation, &e.Language, &e.Level, &e.Example, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *vocabularyRepository) Get(ctx context.Context, id int64) (*models.VocabularyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("getting vocabulary entry: id=%d", id)

	e, err := scanVocabulary(r.db.QueryRowContext(ctx,
		`SELECT `+strings.Join(vocabularyColumns, ", ")+` FROM vocabulary_entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vocabulary entry %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		log.Error("failed to get vocabulary entry: %v", err)
		return nil, err
	}
	return e, nil
}

func (r *vocabularyRepository) Insert(ctx context.Context, e models.VocabularyEntry) (*models.VocabularyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("inserting vocabulary entry: term=%s, language=%s", e.Term, e.Language)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO vocabulary_entries (term, translation, language, level, example)
VALUES (?, ?, ?, ?, ?)
`, e.Term, e.Translation, e.Language, e.Level, e.Example)
	if err != nil {
		log.Error("failed to insert vocabulary entry: %v", err)
		return nil, mapConstraintErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get vocabulary id: %v", err)
		return nil, err
	}
	log.Debug("vocabulary entry inserted: id=%d", id)
	return r.Get(ctx, id)
}

func (r *vocabularyRepository) UpsertBatch(ctx context.Context, entries []models.VocabularyEntry) ([]models.VocabularyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("batch upserting %d vocabulary entries", len(entries))

	if len(entries) == 0 {
		return nil, nil
	}

	stored := make([]models.VocabularyEntry, 0, len(entries))
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		insert, err := tx.PrepareContext(ctx, `
INSERT INTO vocabulary_entries (term, translation, language, level, example)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(term, language) DO NOTHING
`)
		if err != nil {
			return err
		}
		defer insert.Close()

		lookup, err := tx.PrepareContext(ctx,
			`SELECT `+strings.Join(vocabularyColumns, ", ")+` FROM vocabulary_entries WHERE term = ? AND language = ?`)
		if err != nil {
			return err
		}
		defer lookup.Close()

		for _, e := range entries {
			if _, err := insert.ExecContext(ctx, e.Term, e.Translation, e.Language, e.Level, e.Example); err != nil {
				log.Error("failed to insert vocabulary entry %q: %v", e.Term, err)
				return err
			}
			got, err := scanVocabulary(lookup.QueryRowContext(ctx, e.Term, e.Language))
			if err != nil {
				return err
			}
			stored = append(stored, *got)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to upsert vocabulary batch: %v", err)
		return nil, err
	}
	log.Debug("upserted %d vocabulary entries", len(stored))
	return stored, nil
}

func applyVocabularyFilter(q squirrel.SelectBuilder, f models.VocabularyFilter) squirrel.SelectBuilder {
	if f.Language != "" {
		q = q.Where(squirrel.Eq{"language": f.Language})
	}
	if f.Level != "" {
		q = q.Where(squirrel.Eq{"level": f.Level})
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(squirrel.Or{
			squirrel.Like{"term": p},
			squirrel.Like{"translation": p},
		})
	}
	return q
}

func (r *vocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")
	log.Debug("listing vocabulary: language=%s, level=%s, search=%s", filter.Language, filter.Level, filter.Search)

	query := applyVocabularyFilter(sqlBuilder.Select(vocabularyColumns...).From("vocabulary_entries"), filter).
		OrderBy("term ASC", "id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list vocabulary: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.VocabularyEntry
	for rows.Next() {
		e, err := scanVocabulary(rows)
		if err != nil {
			log.Error("failed to scan vocabulary row: %v", err)
			return nil, err
		}
		entries = append(entries, *e)
	}
	log.Debug("found %d vocabulary entries", len(entries))
	return entries, rows.Err()
}

func (r *vocabularyRepository) Count(ctx context.Context, filter models.VocabularyFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocabulary_repo")

	sqlStr, args, err := applyVocabularyFilter(sqlBuilder.Select("COUNT(*)").From("vocabulary_entries"), filter).ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count vocabulary: %v", err)
		return 0, err
	}
	return count, nil
}
