package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"courseplayer/internal/logger"
	"courseplayer/internal/model"
	"courseplayer/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLesson() model.Lesson {
	return model.Lesson{
		ID: 1,
		Resources: []model.Resource{
			{Name: "Course Slides", Type: "pdf", Key: "courses/1/lessons/1/slides.pdf"},
			{Name: "Cheat Sheet", Type: "pdf", URL: "https://cdn.example.com/cheat.pdf"},
			{Name: "Orphan", Type: "zip"},
		},
	}
}

func TestResourceLinksWithoutBucket(t *testing.T) {
	svc := NewResourceService(nil, "", 0, logger.Nop())

	links, err := svc.Links(context.Background(), testLesson())
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Cheat Sheet", links[0].Name)
	assert.Equal(t, "https://cdn.example.com/cheat.pdf", links[0].URL)
	assert.Nil(t, links[0].ExpiresAt)
}

func TestResourceLinksArePresigned(t *testing.T) {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		BaseEndpoint: aws.String("http://localhost:9000"),
		UsePathStyle: true,
	})
	svc := NewResourceService(client, "lesson-resources", 5*time.Minute, logger.Nop())

	links, err := svc.Links(context.Background(), testLesson())
	require.NoError(t, err)
	require.Len(t, links, 2)

	u, err := url.Parse(links[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/lesson-resources/courses/1/lessons/1/slides.pdf", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	require.NotNil(t, links[0].ExpiresAt)

	assert.Equal(t, "https://cdn.example.com/cheat.pdf", links[1].URL)
}

func TestSecretVersionName(t *testing.T) {
	assert.Equal(t, "projects/p/secrets/jwt/versions/latest", secretVersionName("p", "jwt"))
	assert.Equal(t, "projects/q/secrets/jwt/versions/latest", secretVersionName("p", "projects/q/secrets/jwt"))
	assert.Equal(t, "projects/q/secrets/jwt/versions/3", secretVersionName("p", "projects/q/secrets/jwt/versions/3"))
}

func TestNoteServiceDefaultsToEmptyNote(t *testing.T) {
	svc := NewNoteService(repository.NewNoteRepository())
	ctx := context.Background()

	n, err := svc.GetNote(ctx, "u1", "1", 3)
	require.NoError(t, err)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, 3, n.LessonID)

	_, err = svc.SaveNote(ctx, "u1", "1", 3, "selectors matter")
	require.NoError(t, err)
	n, err = svc.GetNote(ctx, "u1", "1", 3)
	require.NoError(t, err)
	assert.Equal(t, "selectors matter", n.Content)
}
