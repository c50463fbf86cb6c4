package casting

import (
	"context"
	"math"
	"testing"

	"casting/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantOffset int
		wantErr    error
	}{
		{name: "first page", page: 1, pageSize: 10, wantOffset: 0},
		{name: "third page", page: 3, pageSize: 10, wantOffset: 20},
		{name: "zero", page: 0, pageSize: 10, wantErr: domain.ErrValidation},
		{name: "negative", page: -4, pageSize: 10, wantErr: domain.ErrValidation},
		{name: "offset would overflow", page: math.MaxInt, pageSize: 10, wantErr: domain.ErrNotFound},
		{name: "largest reachable page", page: math.MaxInt/10 + 1, pageSize: 10, wantOffset: math.MaxInt / 10 * 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, err := pageBounds(tt.page, tt.pageSize)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.pageSize, limit)
			assert.GreaterOrEqual(t, offset, 0)
		})
	}
}

func TestListMovies_HugePageIsNotFound(t *testing.T) {
	f := newMovieFixture(10)

	_, err := f.movies.ListMovies(context.Background(), math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
