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
	castingRepo "casting/internal/domain/repositories/casting"
	castingSvc "casting/internal/domain/services/casting"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// actorService implements the ActorService interface
type actorService struct {
	actorRepo castingRepo.ActorRepository
	pageSize  int
	logger    *slog.Logger
}

// NewActorService creates a new actor service
func NewActorService(
	actorRepo castingRepo.ActorRepository,
	pageSize int,
	logger *slog.Logger,
) castingSvc.ActorService {
	return &actorService{
		actorRepo: actorRepo,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// CreateActor creates a new actor
func (s *actorService) CreateActor(ctx context.Context, req *castingSvc.CreateActorRequest) (*models.Actor, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	actor := &models.Actor{
		Name:      strings.TrimSpace(req.Name),
		Age:       *req.Age,
		Gender:    normalizeGender(req.Gender),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.actorRepo.Create(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.Info("actor created",
		"id", actor.ID,
		"name", actor.Name,
	)

	return actor, nil
}

// GetActor retrieves an actor by ID
func (s *actorService) GetActor(ctx context.Context, id int64) (*models.Actor, error) {
	return s.actorRepo.GetByID(ctx, id)
}

// ListActors returns one page of actors
func (s *actorService) ListActors(ctx context.Context, page int) (*models.Page[models.Actor], error) {
	offset, limit, err := pageBounds(page, s.pageSize)
	if err != nil {
		return nil, err
	}

	actors, total, err := s.actorRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	if err := checkPageInRange(page, len(actors)); err != nil {
		return nil, err
	}

	return &models.Page[models.Actor]{Items: actors, Page: page, TotalItems: total}, nil
}

// UpdateActor applies a partial update to an actor
func (s *actorService) UpdateActor(ctx context.Context, id int64, req *castingSvc.UpdateActorRequest) (*models.Actor, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	actor, err := s.actorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		actor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		actor.Age = *req.Age
	}
	// Present with null clears the gender
	actor.Gender = normalizeGender(req.Gender.ValueOr(actor.Gender))
	actor.UpdatedAt = time.Now()

	if err := s.actorRepo.Update(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.Info("actor updated",
		"id", actor.ID,
		"name", actor.Name,
	)

	return actor, nil
}

// DeleteActor deletes an actor
func (s *actorService) DeleteActor(ctx context.Context, id int64) error {
	if err := s.actorRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("actor deleted", "id", id)
	return nil
}

// validateCreateRequest validates a create actor request
func (s *actorService) validateCreateRequest(req *castingSvc.CreateActorRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxActorNameLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Age,
			validation.NotNil,
			validation.Min(0),
			validation.Max(config.MaxActorAge),
		),
		validation.Field(&req.Gender, validation.By(validGender)),
	)
}

// validateUpdateRequest validates an update actor request
func (s *actorService) validateUpdateRequest(req *castingSvc.UpdateActorRequest) error {
	if req.Name == nil && req.Age == nil && !req.Gender.Present {
		return fmt.Errorf("at least one of name, age, gender is required")
	}

	gender := req.Gender.ValueOr(nil)

	return validation.Errors{
		"name": validation.Validate(req.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, config.MaxActorNameLength),
			validation.By(notBlank),
		),
		"age": validation.Validate(req.Age,
			validation.Min(0),
			validation.Max(config.MaxActorAge),
		),
		"gender": validation.Validate(gender, validation.By(validGender)),
	}.Filter()
}

// normalizeGender lowercases a gender; empty strings become NULL
func normalizeGender(gender *string) *string {
	if gender == nil {
		return nil
	}
	g := strings.ToLower(strings.TrimSpace(*gender))
	if g == "" {
		return nil
	}
	return &g
}
