package repository

import (
	"context"
	"testing"

	"courseplayer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCourseRepoListsSummariesInIDOrder(t *testing.T) {
	repo := NewMemoryCourseRepo(SeedCourses())

	list, err := repo.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 6)

	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "Complete Web Development Bootcamp", list[0].Title)
	assert.Equal(t, 3, list[0].ChapterCount)
	assert.Equal(t, 7, list[0].LessonCount)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestMemoryCourseRepoGetCourse(t *testing.T) {
	repo := NewMemoryCourseRepo(SeedCourses())
	ctx := context.Background()

	c, err := repo.GetCourseByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, c)
	lessons := c.Flatten()
	require.Len(t, lessons, 7)
	assert.Equal(t, model.LessonQuiz, lessons[5].Kind)
	assert.Len(t, lessons[5].Quiz, 5)

	missing, err := repo.GetCourseByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryCourseRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryCourseRepo(SeedCourses())
	ctx := context.Background()

	c, err := repo.GetCourseByID(ctx, "1")
	require.NoError(t, err)
	c.Title = "changed"
	c.Chapters[0].Lessons[0].Completed = true

	again, err := repo.GetCourseByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Complete Web Development Bootcamp", again.Title)
	assert.False(t, again.Chapters[0].Lessons[0].Completed)
}

func TestSeedCoursesHaveUniqueLessonIDs(t *testing.T) {
	for _, c := range SeedCourses() {
		seen := map[int]bool{}
		for _, l := range c.Flatten() {
			assert.False(t, seen[l.ID], "course %s repeats lesson %d", c.ID, l.ID)
			seen[l.ID] = true
		}
	}
}

func TestNoteRepository(t *testing.T) {
	repo := NewNoteRepository()
	ctx := context.Background()

	n, err := repo.GetNote(ctx, "u1", "1", 2)
	require.NoError(t, err)
	assert.Nil(t, n)

	require.NoError(t, repo.SaveNote(ctx, &model.LessonNote{UserID: "u1", CourseID: "1", LessonID: 2, Content: "flexbox"}))
	require.NoError(t, repo.SaveNote(ctx, &model.LessonNote{UserID: "u1", CourseID: "1", LessonID: 2, Content: "grid"}))

	n, err = repo.GetNote(ctx, "u1", "1", 2)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "grid", n.Content)

	other, err := repo.GetNote(ctx, "u2", "1", 2)
	require.NoError(t, err)
	assert.Nil(t, other)

	assert.Error(t, repo.SaveNote(ctx, &model.LessonNote{CourseID: "1", LessonID: 2}))
}
