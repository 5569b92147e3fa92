package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/secmon-lab/themis/pkg/utils/errutil"
)

func activityIDFrom(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "activityID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrActivityNotFound, "invalid activity ID",
			goerr.V("raw", raw))
	}
	return id, nil
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity model.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode activity"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.CreateActivity(r.Context(), &activity)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.uc.ListActivities(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, activities)
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := activityIDFrom(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	activity, err := s.uc.GetActivity(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, activity)
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := activityIDFrom(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	var activity model.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode activity"), http.StatusBadRequest)
		return
	}
	activity.ID = id

	updated, err := s.uc.UpdateActivity(r.Context(), &activity)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := activityIDFrom(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	if err := s.uc.DeleteActivity(r.Context(), id); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
