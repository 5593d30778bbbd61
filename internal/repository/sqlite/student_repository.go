package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

const studentColumns = `id, username, display_name, telegram_chat_id, created_at, last_reminder_at`

type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new StudentRepository implementation
func NewStudentRepository(db *sql.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		s          models.Student
		chatID     sql.NullInt64
		remindedAt sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.Username, &s.DisplayName, &chatID, &s.CreatedAt, &remindedAt); err != nil {
		return nil, err
	}
	if chatID.Valid {
		s.TelegramChatID = &chatID.Int64
	}
	if remindedAt.Valid {
		t := remindedAt.Time
		s.LastReminderAt = &t
	}
	return &s, nil
}

func (r *studentRepository) Upsert(ctx context.Context, ns models.NewStudent) (*models.Student, error) {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	username := strings.ToLower(strings.TrimSpace(ns.Username))
	log.Debug("upserting student for username: %s", username)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO students (username, display_name, telegram_chat_id)
VALUES (?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
    display_name = CASE WHEN excluded.display_name != '' THEN excluded.display_name ELSE students.display_name END,
    telegram_chat_id = COALESCE(excluded.telegram_chat_id, students.telegram_chat_id)
`, username, ns.DisplayName, ns.TelegramChatID)
	if err != nil {
		log.Error("failed to upsert student: %v", err)
		return nil, err
	}

	s, err := scanStudent(r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE username = ?`, username))
	if err != nil {
		log.Error("failed to load upserted student: %v", err)
		return nil, err
	}
	log.Debug("student upserted: id=%d", s.ID)
	return s, nil
}

func (r *studentRepository) UpdateReminded(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("updating reminder time: student_id=%d", id)

	res, err := r.db.ExecContext(ctx, `UPDATE students SET last_reminder_at = ? WHERE id = ?`, utc(t), id)
	if err != nil {
		log.Error("failed to update reminder time: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("student %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at ASC, id ASC`)
}

// ListReminderTargets returns students that can be reached on Telegram.
func (r *studentRepository) ListReminderTargets(ctx context.Context) ([]models.Student, error) {
	return r.list(ctx, `SELECT `+studentColumns+` FROM students WHERE telegram_chat_id IS NOT NULL ORDER BY id ASC`)
}

func (r *studentRepository) list(ctx context.Context, query string) ([]models.Student, error) {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("listing students")

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list students: %v", err)
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			log.Error("failed to scan student row: %v", err)
			return nil, err
		}
		students = append(students, *s)
	}

	log.Debug("found %d students", len(students))
	return students, rows.Err()
}

func (r *studentRepository) Get(ctx context.Context, id int64) (*models.Student, error) {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("getting student: id=%d", id)

	s, err := scanStudent(r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("student not found: id=%d", id)
		return nil, fmt.Errorf("student %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		log.Error("failed to get student: %v", err)
		return nil, err
	}
	return s, nil
}

// Delete removes the student; cards and their history cascade.
func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("deleting student and related data: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete student %d: %v", id, err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("student %d: %w", id, repository.ErrNotFound)
	}
	log.Debug("student %d deleted", id)
	return nil
}
