package services

import (
	"context"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// StudentService handles learner registration and lookup
type StudentService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	RegisterStudent(ctx context.Context, ns models.NewStudent) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repository.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

func (s *studentService) ListStudents(ctx context.Context) ([]models.Student, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing students")

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		log.Error("failed to list students: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return students, nil
}

func (s *studentService) RegisterStudent(ctx context.Context, ns models.NewStudent) (*models.Student, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering student: username=%s", ns.Username)

	if err := validate.Struct(ns); err != nil {
		return nil, errors.FromValidation(err)
	}

	student, err := s.studentRepo.Upsert(ctx, ns)
	if err != nil {
		log.Error("failed to register student: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return student, nil
}

func (s *studentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting student: id=%d", id)

	student, err := s.studentRepo.Get(ctx, id)
	if err != nil {
		return nil, repoError(ctx, err, "student", id)
	}
	return student, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Info("deleting student: id=%d", id)

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return repoError(ctx, err, "student", id)
	}
	return nil
}
