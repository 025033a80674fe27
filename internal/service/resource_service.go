package service

import (
	"context"
	"fmt"
	"time"

	"courseplayer/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ResourceLink is a downloadable lesson resource with a usable URL.
type ResourceLink struct {
	Name      string
	Type      string
	URL       string
	ExpiresAt *time.Time
}

// ResourceService resolves lesson resources into download links
type ResourceService interface {
	Links(ctx context.Context, lesson model.Lesson) ([]ResourceLink, error)
}

type resourceService struct {
	presignClient *s3.PresignClient
	bucketName    string
	ttl           time.Duration
	now           func() time.Time
	logger        zerolog.Logger
}

// NewResourceService creates a ResourceService. With a nil client or an empty
// bucket only the static resource URLs are served.
func NewResourceService(s3Client *s3.Client, bucketName string, ttl time.Duration, logger zerolog.Logger) ResourceService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	s := &resourceService{
		bucketName: bucketName,
		ttl:        ttl,
		now:        time.Now,
		logger:     logger.With().Str("service", "ResourceService").Logger(),
	}
	if s3Client != nil && bucketName != "" {
		s.presignClient = s3.NewPresignClient(s3Client)
	}
	return s
}

func (s *resourceService) Links(ctx context.Context, lesson model.Lesson) ([]ResourceLink, error) {
	links := make([]ResourceLink, 0, len(lesson.Resources))
	for _, r := range lesson.Resources {
		link := ResourceLink{Name: r.Name, Type: r.Type, URL: r.URL}
		if r.Key != "" && s.presignClient != nil {
			url, err := s.presignedGetURL(ctx, r.Key)
			if err != nil {
				return nil, err
			}
			exp := s.now().Add(s.ttl)
			link.URL, link.ExpiresAt = url, &exp
		}
		if link.URL == "" {
			s.logger.Warn().Int("lesson_id", lesson.ID).Str("resource", r.Name).Msg("Resource has no downloadable location")
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

func (s *resourceService) presignedGetURL(ctx context.Context, key string) (string, error) {
	resp, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.logger.Error().Err(err).Str("object_key", key).Msg("Failed to generate presigned URL")
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return resp.URL, nil
}
