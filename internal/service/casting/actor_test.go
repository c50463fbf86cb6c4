package casting

import (
	"context"
	"encoding/json"
	"testing"

	"casting/internal/domain"
	castingSvc "casting/internal/domain/services/casting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestCreateActor(t *testing.T) {
	f := newMovieFixture(10)

	actor, err := f.actors.CreateActor(context.Background(), &castingSvc.CreateActorRequest{
		Name:   " Jun Okafor ",
		Age:    intPtr(27),
		Gender: strPtr("Other"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jun Okafor", actor.Name)
	assert.Equal(t, 27, actor.Age)
	require.NotNil(t, actor.Gender)
	assert.Equal(t, "other", *actor.Gender)
}

func TestCreateActor_AgeZeroAndNoGender(t *testing.T) {
	f := newMovieFixture(10)

	actor, err := f.actors.CreateActor(context.Background(), &castingSvc.CreateActorRequest{
		Name:   "Newborn Extra",
		Age:    intPtr(0),
		Gender: strPtr(""),
	})
	require.NoError(t, err)
	assert.Zero(t, actor.Age)
	assert.Nil(t, actor.Gender)
}

func TestCreateActor_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  castingSvc.CreateActorRequest
	}{
		{"missing name", castingSvc.CreateActorRequest{Age: intPtr(30)}},
		{"blank name", castingSvc.CreateActorRequest{Name: "  ", Age: intPtr(30)}},
		{"missing age", castingSvc.CreateActorRequest{Name: "Mara"}},
		{"negative age", castingSvc.CreateActorRequest{Name: "Mara", Age: intPtr(-1)}},
		{"age too high", castingSvc.CreateActorRequest{Name: "Mara", Age: intPtr(151)}},
		{"unknown gender", castingSvc.CreateActorRequest{Name: "Mara", Age: intPtr(30), Gender: strPtr("robot")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMovieFixture(10)
			req := tt.req
			_, err := f.actors.CreateActor(context.Background(), &req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.store.actors)
		})
	}
}

func TestUpdateActor_GenderMergePatch(t *testing.T) {
	f := newMovieFixture(10)
	ctx := context.Background()
	actor, err := f.actors.CreateActor(ctx, &castingSvc.CreateActorRequest{
		Name: "Tomas Reyes", Age: intPtr(41), Gender: strPtr("male"),
	})
	require.NoError(t, err)

	decode := func(body string) *castingSvc.UpdateActorRequest {
		var req castingSvc.UpdateActorRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		return &req
	}

	// absent gender keeps the current value
	updated, err := f.actors.UpdateActor(ctx, actor.ID, decode(`{"age": 42}`))
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Age)
	require.NotNil(t, updated.Gender)
	assert.Equal(t, "male", *updated.Gender)

	// explicit null clears it
	updated, err = f.actors.UpdateActor(ctx, actor.ID, decode(`{"gender": null}`))
	require.NoError(t, err)
	assert.Nil(t, updated.Gender)

	// a value replaces it
	updated, err = f.actors.UpdateActor(ctx, actor.ID, decode(`{"gender": "FEMALE", "name": "T. Reyes"}`))
	require.NoError(t, err)
	require.NotNil(t, updated.Gender)
	assert.Equal(t, "female", *updated.Gender)
	assert.Equal(t, "T. Reyes", updated.Name)
}

func TestUpdateActor_Errors(t *testing.T) {
	f := newMovieFixture(10)
	ctx := context.Background()
	actor, err := f.actors.CreateActor(ctx, &castingSvc.CreateActorRequest{Name: "Mara", Age: intPtr(30)})
	require.NoError(t, err)

	_, err = f.actors.UpdateActor(ctx, actor.ID, &castingSvc.UpdateActorRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation, "empty patch")

	_, err = f.actors.UpdateActor(ctx, actor.ID, &castingSvc.UpdateActorRequest{Age: intPtr(200)})
	assert.ErrorIs(t, err, domain.ErrValidation, "age out of range")

	_, err = f.actors.UpdateActor(ctx, actor.ID, &castingSvc.UpdateActorRequest{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrValidation, "empty name")

	_, err = f.actors.UpdateActor(ctx, 999, &castingSvc.UpdateActorRequest{Age: intPtr(31)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListActorsAndDelete(t *testing.T) {
	f := newMovieFixture(1)
	ctx := context.Background()
	first, err := f.actors.CreateActor(ctx, &castingSvc.CreateActorRequest{Name: "One", Age: intPtr(20)})
	require.NoError(t, err)
	_, err = f.actors.CreateActor(ctx, &castingSvc.CreateActorRequest{Name: "Two", Age: intPtr(21)})
	require.NoError(t, err)

	page, err := f.actors.ListActors(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Two", page.Items[0].Name)
	assert.Equal(t, 2, page.TotalItems)

	require.NoError(t, f.actors.DeleteActor(ctx, first.ID))
	_, err = f.actors.GetActor(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.actors.ListActors(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
