package casting

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"casting/internal/domain"
	models "casting/internal/domain/models/casting"
	"casting/internal/domain/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore backs all three fake repositories so cascades behave like the
// real schema.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	movies map[int64]models.Movie
	actors map[int64]models.Actor
	casts  []models.Cast
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		movies: make(map[int64]models.Movie),
		actors: make(map[int64]models.Actor),
	}
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeMovieRepo struct{ s *memoryStore }

func (r *fakeMovieRepo) Create(ctx context.Context, movie *models.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movie.ID = r.s.id()
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMovieRepo) List(ctx context.Context, offset, limit int) ([]models.Movie, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]models.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, offset, limit), len(all), nil
}

func (r *fakeMovieRepo) Update(ctx context.Context, movie *models.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[movie.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.movies, id)
	kept := r.s.casts[:0]
	for _, c := range r.s.casts {
		if c.MovieID != id {
			kept = append(kept, c)
		}
	}
	r.s.casts = kept
	return nil
}

type fakeActorRepo struct{ s *memoryStore }

func (r *fakeActorRepo) Create(ctx context.Context, actor *models.Actor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actor.ID = r.s.id()
	r.s.actors[actor.ID] = *actor
	return nil
}

func (r *fakeActorRepo) GetByID(ctx context.Context, id int64) (*models.Actor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.actors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *fakeActorRepo) List(ctx context.Context, offset, limit int) ([]models.Actor, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]models.Actor, 0, len(r.s.actors))
	for _, a := range r.s.actors {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, offset, limit), len(all), nil
}

func (r *fakeActorRepo) Update(ctx context.Context, actor *models.Actor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.actors[actor.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.actors[actor.ID] = *actor
	return nil
}

func (r *fakeActorRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.actors[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.actors, id)
	return nil
}

type fakeCastRepo struct{ s *memoryStore }

func (r *fakeCastRepo) Add(ctx context.Context, cast *models.Cast) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.casts {
		if c.MovieID == cast.MovieID && c.ActorID == cast.ActorID {
			return domain.NewConflictError("cast", c.ID, "actor %d is already cast in movie %d", cast.ActorID, cast.MovieID)
		}
	}
	cast.ID = r.s.id()
	r.s.casts = append(r.s.casts, *cast)
	return nil
}

func (r *fakeCastRepo) ListActors(ctx context.Context, movieID int64) ([]models.Actor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actors := []models.Actor{}
	for _, c := range r.s.casts {
		if c.MovieID == movieID {
			actors = append(actors, r.s.actors[c.ActorID])
		}
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
	return actors, nil
}

// fakeTxManager runs fn inline and counts transactions
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
