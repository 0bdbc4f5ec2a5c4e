package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	appmatches "github.com/preston-bernstein/matchboard/internal/app/matches"
	appteams "github.com/preston-bernstein/matchboard/internal/app/teams"
	"github.com/preston-bernstein/matchboard/internal/domain"
	domainmatches "github.com/preston-bernstein/matchboard/internal/domain/matches"
	"github.com/preston-bernstein/matchboard/internal/logging"
)

const (
	maxBodyBytes = 1 << 20

	msgMatchNotFound = "match not found"
	msgInvalidBody   = "invalid JSON body"
	msgInternal      = "internal server error"
)

// Handler wires HTTP routes to the match and team services.
type Handler struct {
	matches *appmatches.Service
	teams   *appteams.Service
	readyFn func(context.Context) error
	logger  *slog.Logger
}

// NewHandler constructs a Handler. readyFn may be nil, in which case the
// service always reports ready.
func NewHandler(matchSvc *appmatches.Service, teamSvc *appteams.Service, readyFn func(context.Context) error, logger *slog.Logger) *Handler {
	return &Handler{
		matches: matchSvc,
		teams:   teamSvc,
		readyFn: readyFn,
		logger:  logger,
	}
}

// ListMatches returns every match joined with its teams.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	items := h.matches.List(r.Context())
	logging.Info(loggerFromContext(r, h.logger), "served matches", slog.Int(logging.FieldCount, len(items)))
	writeJSON(w, http.StatusOK, items, h.logger)
}

// ListTeams returns every team with its logo URL.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	items := h.teams.List(r.Context())
	logging.Info(loggerFromContext(r, h.logger), "served teams", slog.Int(logging.FieldCount, len(items)))
	writeJSON(w, http.StatusOK, items, h.logger)
}

// CreateMatch stores the request body as a new match.
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	body, ok := h.decodeBody(w, r, logger)
	if !ok {
		return
	}

	created, err := h.matches.Create(r.Context(), body)
	if err != nil {
		h.internalError(w, logger, "match create failed", err)
		return
	}
	id, _ := created.ID()
	logging.Info(logger, "match created", slog.Int64(logging.FieldMatchID, id))
	writeJSON(w, http.StatusCreated, created, h.logger)
}

// DeleteMatch removes a match by id.
func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := matchID(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgMatchNotFound)
		return
	}

	err := h.matches.Delete(r.Context(), id)
	switch {
	case errors.Is(err, appmatches.ErrNotFound):
		writeText(w, http.StatusNotFound, msgMatchNotFound)
	case err != nil:
		h.internalError(w, logger, "match delete failed", err, slog.Int64(logging.FieldMatchID, id))
	default:
		logging.Info(logger, "match deleted", slog.Int64(logging.FieldMatchID, id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// UpdateMatchScore replaces the score of a match. A body without a score clears it.
func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	body, ok := h.decodeBody(w, r, logger)
	if !ok {
		return
	}
	id, ok := matchID(r)
	if !ok {
		writeText(w, http.StatusNotFound, msgMatchNotFound)
		return
	}

	updated, err := h.matches.UpdateScore(r.Context(), id, body[domainmatches.FieldScore])
	switch {
	case errors.Is(err, appmatches.ErrNotFound):
		writeText(w, http.StatusNotFound, msgMatchNotFound)
	case err != nil:
		h.internalError(w, logger, "match score update failed", err, slog.Int64(logging.FieldMatchID, id))
	default:
		logging.Info(logger, "match score updated", slog.Int64(logging.FieldMatchID, id))
		writeJSON(w, http.StatusOK, updated, h.logger)
	}
}

// CreateTeam stores the request body as a new team.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	body, ok := h.decodeBody(w, r, logger)
	if !ok {
		return
	}

	created, err := h.teams.Create(r.Context(), body)
	if err != nil {
		h.internalError(w, logger, "team create failed", err)
		return
	}
	id, _ := created.ID()
	logging.Info(logger, "team created", slog.Int64(logging.FieldTeamID, id))
	writeJSON(w, http.StatusCreated, created, h.logger)
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (domain.Record, bool) {
	body, err := domain.DecodeRecord(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logging.Warn(logger, "rejected request body", slog.Any("error", err))
		writeText(w, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}
	return body, true
}

func (h *Handler) internalError(w http.ResponseWriter, logger *slog.Logger, msg string, err error, args ...any) {
	logging.Error(logger, msg, err, args...)
	writeText(w, http.StatusInternalServerError, msgInternal)
}

// matchID parses the {id} route variable. Anything that is not a base-10
// integer can never match a stored id.
func matchID(r *http.Request) (int64, bool) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
