package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/secret"
)

const (
	keySourceDatabase    = "database"
	keySourceEnvironment = "environment"
)

// TornConfigService manages the Torn API key. A key stored through the API is kept
// encrypted in the database and takes precedence over the key from the environment.
//
// It implements torn.KeySource.
type TornConfigService struct {
	configRepo *repository.TornConfigRepository
	cipher     *secret.Cipher
	envKey     string
	logger     logrus.FieldLogger
}

// NewTornConfigService creates a new TornConfigService.
// cipher may be nil, in which case keys cannot be stored and only envKey is used.
func NewTornConfigService(
	configRepo *repository.TornConfigRepository,
	cipher *secret.Cipher,
	envKey string,
	logger logrus.FieldLogger,
) *TornConfigService {
	return &TornConfigService{
		configRepo: configRepo,
		cipher:     cipher,
		envKey:     envKey,
		logger:     logger,
	}
}

// APIKey returns the key to use for Torn requests.
// Returns apperrors.ErrTornConfigNotFound when neither a stored nor an environment key exists.
func (s *TornConfigService) APIKey(ctx context.Context) (string, error) {
	if s.cipher != nil {
		encrypted, _, err := s.configRepo.GetEncryptedAPIKey(ctx)
		switch {
		case err == nil:
			key, err := s.cipher.Decrypt(encrypted)
			if err != nil {
				return "", fmt.Errorf("failed to decrypt torn api key: %w", err)
			}
			return key, nil
		case !errors.Is(err, apperrors.ErrTornConfigNotFound):
			return "", err
		}
	}

	if s.envKey != "" {
		return s.envKey, nil
	}
	return "", apperrors.ErrTornConfigNotFound
}

// GetConfig reports where the active key comes from.
func (s *TornConfigService) GetConfig(ctx context.Context) (model.TornConfigStatus, error) {
	if s.cipher != nil {
		_, updatedAt, err := s.configRepo.GetEncryptedAPIKey(ctx)
		switch {
		case err == nil:
			return model.TornConfigStatus{
				Configured: true,
				Source:     keySourceDatabase,
				UpdatedAt:  &updatedAt,
			}, nil
		case !errors.Is(err, apperrors.ErrTornConfigNotFound):
			return model.TornConfigStatus{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTornConfig, err)
		}
	}

	if s.envKey != "" {
		return model.TornConfigStatus{Configured: true, Source: keySourceEnvironment}, nil
	}
	return model.TornConfigStatus{Configured: false}, nil
}

// SetAPIKey encrypts and stores key, replacing a previously stored key.
// Returns apperrors.ErrEncryptionNotConfigured when no encryption key is configured.
func (s *TornConfigService) SetAPIKey(ctx context.Context, key string) (model.TornConfigStatus, error) {
	if s.cipher == nil {
		return model.TornConfigStatus{}, apperrors.ErrEncryptionNotConfigured
	}

	encrypted, err := s.cipher.Encrypt(key)
	if err != nil {
		return model.TornConfigStatus{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSetTornConfig, err)
	}

	updatedAt := time.Now().UTC().Truncate(time.Second)
	if err := s.configRepo.SetEncryptedAPIKey(ctx, encrypted, updatedAt); err != nil {
		return model.TornConfigStatus{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSetTornConfig, err)
	}

	s.logger.Info("torn api key updated")

	return model.TornConfigStatus{
		Configured: true,
		Source:     keySourceDatabase,
		UpdatedAt:  &updatedAt,
	}, nil
}
