package memory

import (
	"context"
	"testing"
	"time"

	"catalog/internal/domain/course"
	"catalog/internal/store/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository()

	a, err := course.NewCourse("Algebra", "Ada", "math", course.LevelBeginner, 400, time.Time{})
	require.NoError(t, err)
	b, err := course.NewCourse("Botany", "Bo", "science", course.LevelAdvanced, 900, time.Time{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	got, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Botany", got.Title)

	got.Title = "changed"
	again, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Botany", again.Title, "returned courses are copies")

	a.Price = 450
	require.NoError(t, repo.Save(ctx, a))
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, course.Money(450), all[0].Price)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Save(ctx, &course.Course{ID: 42, Title: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
