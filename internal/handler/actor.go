package handler

import (
	"log/slog"
	"net/http"

	"casting/internal/domain/models"
	castingSvc "casting/internal/domain/services/casting"
	"casting/internal/httputil"
)

// ActorHandler handles actor HTTP requests
type ActorHandler struct {
	actorService castingSvc.ActorService
	logger       *slog.Logger
}

// NewActorHandler creates a new actor handler
func NewActorHandler(actorService castingSvc.ActorService, logger *slog.Logger) *ActorHandler {
	return &ActorHandler{
		actorService: actorService,
		logger:       logger,
	}
}

// ListActors returns one page of actors
// GET /actors?page=N
func (h *ActorHandler) ListActors(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	page, err := httputil.QueryPage(r)
	if err != nil {
		badRequest(w, r, err)
		return
	}

	result, err := h.actorService.ListActors(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{
		"actors": result.Items,
		"page":   result.Page,
		"total":  result.TotalItems,
	})
}

// GetActor retrieves an actor by ID
// GET /actors/{id}
func (h *ActorHandler) GetActor(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	actor, err := h.actorService.GetActor(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{"actor": actor})
}

// CreateActor creates a new actor
// POST /actors
func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request, claims models.Claims) {
	var req castingSvc.CreateActorRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	actor, err := h.actorService.CreateActor(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Debug("actor created by", "id", actor.ID, "user_id", claims.GetUserID())
	respondOK(w, http.StatusCreated, envelope{
		"created": actor.ID,
		"actor":   actor,
	})
}

// UpdateActor applies a partial update. "gender": null clears the gender.
// PATCH /actors/{id}
func (h *ActorHandler) UpdateActor(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	var req castingSvc.UpdateActorRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	actor, err := h.actorService.UpdateActor(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{"actor": actor})
}

// DeleteActor removes an actor and their cast entries
// DELETE /actors/{id}
func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request, claims models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	if err := h.actorService.DeleteActor(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Debug("actor deleted by", "id", id, "user_id", claims.GetUserID())
	respondOK(w, http.StatusOK, envelope{"deleted": id})
}
