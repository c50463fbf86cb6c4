package handler

import (
	"log/slog"
	"net/http"

	"casting/internal/domain/models"
	castingSvc "casting/internal/domain/services/casting"
	"casting/internal/httputil"
)

// MovieHandler handles movie HTTP requests. Every method runs behind the
// permission gate and receives the verified claims.
type MovieHandler struct {
	movieService castingSvc.MovieService
	logger       *slog.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movieService castingSvc.MovieService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		logger:       logger,
	}
}

// ListMovies returns one page of movies
// GET /movies?page=N
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	page, err := httputil.QueryPage(r)
	if err != nil {
		badRequest(w, r, err)
		return
	}

	result, err := h.movieService.ListMovies(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{
		"movies": result.Items,
		"page":   result.Page,
		"total":  result.TotalItems,
	})
}

// GetMovie retrieves a movie by ID
// GET /movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	movie, err := h.movieService.GetMovie(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{"movie": movie})
}

// CreateMovie creates a new movie
// POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request, claims models.Claims) {
	var req castingSvc.CreateMovieRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	movie, err := h.movieService.CreateMovie(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Debug("movie created by", "id", movie.ID, "user_id", claims.GetUserID())
	respondOK(w, http.StatusCreated, envelope{
		"created": movie.ID,
		"movie":   movie,
	})
}

// UpdateMovie applies a partial update
// PATCH /movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	var req castingSvc.UpdateMovieRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	movie, err := h.movieService.UpdateMovie(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{"movie": movie})
}

// DeleteMovie removes a movie and its cast entries
// DELETE /movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request, claims models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	if err := h.movieService.DeleteMovie(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Debug("movie deleted by", "id", id, "user_id", claims.GetUserID())
	respondOK(w, http.StatusOK, envelope{"deleted": id})
}

// ListMovieActors returns the cast of a movie
// GET /movies/{id}/actors
func (h *MovieHandler) ListMovieActors(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	actors, err := h.movieService.ListActors(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusOK, envelope{
		"movie_id": id,
		"actors":   actors,
	})
}

// AddMovieActor casts an existing actor in a movie
// POST /movies/{id}/actors
// Returns 409 when the actor is already cast
func (h *MovieHandler) AddMovieActor(w http.ResponseWriter, r *http.Request, _ models.Claims) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		badRequest(w, r, err)
		return
	}

	var req castingSvc.AddCastRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, r, err)
		return
	}

	cast, err := h.movieService.AddActor(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondOK(w, http.StatusCreated, envelope{"cast": cast})
}
