package api

import (
	"net/http"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
)

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.StudentService.ListStudents(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if students == nil {
		students = []models.Student{}
	}
	writeJSON(w, r, http.StatusOK, students)
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.NewStudent
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	student, err := s.StudentService.RegisterStudent(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("student registered: id=%d", student.ID)
	writeJSON(w, r, http.StatusCreated, student)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, studentFromContext(r.Context()))
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	if err := s.StudentService.DeleteStudent(r.Context(), student.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStudentStats(w http.ResponseWriter, r *http.Request) {
	student := studentFromContext(r.Context())
	stats, err := s.CardService.Stats(r.Context(), student.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
