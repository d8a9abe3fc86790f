package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/testutil"
)

func TestTornConfigService(t *testing.T) {
	t.Run("reports unconfigured without any key", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTornConfigService(t, db, "")

		// Execute
		status, err := svc.GetConfig(context.Background())
		_, keyErr := svc.APIKey(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("GetConfig() returned unexpected error: %v", err)
		}
		if status.Configured {
			t.Error("Expected unconfigured status")
		}
		if !errors.Is(keyErr, apperrors.ErrTornConfigNotFound) {
			t.Errorf("Expected ErrTornConfigNotFound, got %v", keyErr)
		}
	})

	t.Run("falls back to environment key", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTornConfigService(t, db, "env-key")

		// Execute
		key, err := svc.APIKey(context.Background())

		// Assert
		if err != nil || key != "env-key" {
			t.Errorf("Expected env-key, got %q, %v", key, err)
		}
		status, _ := svc.GetConfig(context.Background())
		if status.Source != "environment" {
			t.Errorf("Expected environment source, got %q", status.Source)
		}
	})

	t.Run("stored key is encrypted and takes precedence", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTornConfigService(t, db, "env-key")

		// Execute
		status, err := svc.SetAPIKey(context.Background(), "stored-key")

		// Assert
		if err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}
		if !status.Configured || status.Source != "database" || status.UpdatedAt == nil {
			t.Errorf("Unexpected status %+v", status)
		}

		key, err := svc.APIKey(context.Background())
		if err != nil || key != "stored-key" {
			t.Errorf("Expected stored-key, got %q, %v", key, err)
		}

		encrypted, _, err := repository.NewTornConfigRepository(db).GetEncryptedAPIKey(context.Background())
		if err != nil {
			t.Fatalf("GetEncryptedAPIKey() returned unexpected error: %v", err)
		}
		if encrypted == "stored-key" {
			t.Error("Expected key to be stored encrypted")
		}
	})

	t.Run("refuses to store without encryption key", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := service.NewTornConfigService(repository.NewTornConfigRepository(db), nil, "", logging.Discard())

		// Execute
		_, err := svc.SetAPIKey(context.Background(), "stored-key")

		// Assert
		if !errors.Is(err, apperrors.ErrEncryptionNotConfigured) {
			t.Errorf("Expected ErrEncryptionNotConfigured, got %v", err)
		}
	})
}
