package certificate

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPNG(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	out, err := r.Render(Certificate{
		LearnerName: "Ada Lovelace",
		CourseTitle: "Complete Web Development Bootcamp",
		Instructor:  "Dr. Angela Yu",
		CompletedAt: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestRenderRequiresCourseTitle(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	_, err = r.Render(Certificate{LearnerName: "Ada"})
	assert.Error(t, err)
}

func TestNewRendererMissingFont(t *testing.T) {
	_, err := NewRenderer("/does/not/exist.ttf")
	assert.Error(t, err)
}
