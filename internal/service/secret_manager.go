package service

import (
	"context"
	"fmt"
	"strings"

	"courseplayer/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretManagerService reads runtime secrets such as the JWT signing key
type SecretManagerService interface {
	// GetSecret returns the latest version of a secret. name is either a
	// short secret id or a full "projects/.../secrets/..." resource path.
	GetSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretManagerService struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretManagerService(ctx context.Context, cfg *config.Config) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}

	// Secret Manager has no emulator; a real project is needed even locally.
	opts := []option.ClientOption{option.WithUserAgent("courseplayer")}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerService{
		client:    client,
		projectID: cfg.GCPProjectID,
	}, nil
}

func (s *secretManagerService) GetSecret(ctx context.Context, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(s.projectID, name),
	}

	result, err := s.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}

	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (s *secretManagerService) Close() error {
	return s.client.Close()
}

func secretVersionName(projectID, name string) string {
	switch {
	case strings.Contains(name, "/versions/"):
		return name
	case strings.HasPrefix(name, "projects/"):
		return name + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
}

// LoadJWTSecret replaces cfg.JWTSecret with the secret named by
// cfg.JWTSecretName, when one is configured.
func LoadJWTSecret(ctx context.Context, cfg *config.Config) error {
	if cfg.JWTSecretName == "" {
		return nil
	}
	sm, err := NewSecretManagerService(ctx, cfg)
	if err != nil {
		return err
	}
	defer sm.Close()

	secret, err := sm.GetSecret(ctx, cfg.JWTSecretName)
	if err != nil {
		return fmt.Errorf("loading JWT secret %s: %w", cfg.JWTSecretName, err)
	}
	cfg.JWTSecret = secret
	return nil
}
