package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
)

// handleClassify runs a stateless classification. Nothing is persisted;
// the computed result is returned as-is.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var input model.AssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode input"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.Classify(r.Context(), &input)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleAssessActivity(w http.ResponseWriter, r *http.Request) {
	id, err := activityIDFrom(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	assessment, err := s.uc.AssessActivity(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusCreated, assessment)
}

func (s *Server) handleListActivityAssessments(w http.ResponseWriter, r *http.Request) {
	id, err := activityIDFrom(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	assessments, err := s.uc.ListActivityAssessments(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, assessments)
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := s.uc.ListAssessments(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, assessments)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id := model.AssessmentID(chi.URLParam(r, "assessmentID"))

	assessment, err := s.uc.GetAssessment(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, assessment)
}
