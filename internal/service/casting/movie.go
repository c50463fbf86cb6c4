package casting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"casting/internal/config"
	"casting/internal/domain"
	models "casting/internal/domain/models/casting"
	"casting/internal/domain/repositories"
	castingRepo "casting/internal/domain/repositories/casting"
	castingSvc "casting/internal/domain/services/casting"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// movieService implements the MovieService interface
type movieService struct {
	movieRepo castingRepo.MovieRepository
	actorRepo castingRepo.ActorRepository
	castRepo  castingRepo.CastRepository
	txManager repositories.TransactionManager
	pageSize  int
	logger    *slog.Logger
}

// NewMovieService creates a new movie service
func NewMovieService(
	movieRepo castingRepo.MovieRepository,
	actorRepo castingRepo.ActorRepository,
	castRepo castingRepo.CastRepository,
	txManager repositories.TransactionManager,
	pageSize int,
	logger *slog.Logger,
) castingSvc.MovieService {
	return &movieService{
		movieRepo: movieRepo,
		actorRepo: actorRepo,
		castRepo:  castRepo,
		txManager: txManager,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// CreateMovie creates a new movie
func (s *movieService) CreateMovie(ctx context.Context, req *castingSvc.CreateMovieRequest) (*models.Movie, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	releaseDate, err := models.ParseDate(req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	movie := &models.Movie{
		Title:       strings.TrimSpace(req.Title),
		ReleaseDate: releaseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.logger.Info("movie created",
		"id", movie.ID,
		"title", movie.Title,
	)

	return movie, nil
}

// GetMovie retrieves a movie by ID
func (s *movieService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

// ListMovies returns one page of movies
func (s *movieService) ListMovies(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	offset, limit, err := pageBounds(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	movies, total, err := s.movieRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	if err := checkPageInRange(page, len(movies)); err != nil {
		return nil, err
	}

	return &models.Page[models.Movie]{Items: movies, Page: page, TotalItems: total}, nil
}

// UpdateMovie applies a partial update to a movie
func (s *movieService) UpdateMovie(ctx context.Context, id int64, req *castingSvc.UpdateMovieRequest) (*models.Movie, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = strings.TrimSpace(*req.Title)
	}
	if req.ReleaseDate != nil {
		releaseDate, err := models.ParseDate(*req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		movie.ReleaseDate = releaseDate
	}
	movie.UpdatedAt = time.Now()

	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.logger.Info("movie updated",
		"id", movie.ID,
		"title", movie.Title,
	)

	return movie, nil
}

// DeleteMovie deletes a movie
func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("movie deleted", "id", id)
	return nil
}

// AddActor casts an existing actor in an existing movie
func (s *movieService) AddActor(ctx context.Context, movieID int64, req *castingSvc.AddCastRequest) (*models.Cast, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ActorID, validation.Required, validation.Min(int64(1))),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	cast := &models.Cast{MovieID: movieID, ActorID: req.ActorID}

	// Existence checks give precise not-found errors; the FK still guards races
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.movieRepo.GetByID(txCtx, movieID); err != nil {
			return err
		}
		if _, err := s.actorRepo.GetByID(txCtx, req.ActorID); err != nil {
			return err
		}
		return s.castRepo.Add(txCtx, cast)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("actor cast",
		"movie_id", movieID,
		"actor_id", req.ActorID,
	)

	return cast, nil
}

// ListActors returns the cast of a movie
func (s *movieService) ListActors(ctx context.Context, movieID int64) ([]models.Actor, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.castRepo.ListActors(ctx, movieID)
}

// validateCreateRequest validates a create movie request
func (s *movieService) validateCreateRequest(req *castingSvc.CreateMovieRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxMovieTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.ReleaseDate,
			validation.Required,
			validation.By(validDate),
		),
	)
}

// validateUpdateRequest validates an update movie request
func (s *movieService) validateUpdateRequest(req *castingSvc.UpdateMovieRequest) error {
	if req.Title == nil && req.ReleaseDate == nil {
		return fmt.Errorf("at least one of title, release_date is required")
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxMovieTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.ReleaseDate,
			validation.NilOrNotEmpty,
			validation.By(validDate),
		),
	)
}
