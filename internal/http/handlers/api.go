package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Lerex702/elorank/internal/leaderboard"
	"github.com/charmbracelet/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

type upsertResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LeaderboardHandler serves GET /leaderboard?limit=n.
func LeaderboardHandler(svc LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}

		limit := queryInt(r, "limit")
		logger.Info("Fetching leaderboard", "limit", limit)

		lb, err := svc.GetLeaderboard(r.Context(), limit)
		if err != nil {
			logger.Error("Failed to fetch leaderboard", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, lb)
	}
}

// UpsertPlayerHandler serves POST /players.
func UpsertPlayerHandler(svc LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, upsertResponse{Error: "method not allowed"})
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			logger.Warn("Failed to read player payload", "error", err)
			writeJSON(w, http.StatusInternalServerError, upsertResponse{Error: "failed to read request body"})
			return
		}

		saved, err := svc.UpsertPlayer(r.Context(), body)
		if err != nil {
			var verr *leaderboard.ValidationError
			if errors.As(err, &verr) {
				logger.Warn("Rejected player payload", "error", err)
			} else {
				logger.Error("Failed to upsert player", "error", err)
			}
			// Every failure, malformed payloads included, is a 500.
			writeJSON(w, http.StatusInternalServerError, upsertResponse{Error: err.Error()})
			return
		}

		logger.Info("Updated player", "uuid", saved.UUID, "username", saved.Username, "elo", saved.Elo)
		writeJSON(w, http.StatusOK, upsertResponse{Success: true, Data: saved})
	}
}
