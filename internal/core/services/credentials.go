package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/parcels/internal/core/domain"
	"github.com/custodia-labs/parcels/internal/core/ports/driven"
	"github.com/custodia-labs/parcels/internal/core/ports/driving"
)

// Ensure CredentialsService implements both the driving and driven ports.
var (
	_ driving.CredentialsService = (*CredentialsService)(nil)
	_ driven.CredentialsSource   = (*CredentialsService)(nil)
)

// CredentialsService reads carrier API credentials from the config file,
// with environment variables taking precedence.
//
// Config keys are <carrier>.api_key and <carrier>.secret_key; environment
// variables are PARCELS_<CARRIER>_API_KEY and PARCELS_<CARRIER>_SECRET_KEY.
type CredentialsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewCredentialsService creates a new credentials service.
func NewCredentialsService(configStore driven.ConfigStore) *CredentialsService {
	return &CredentialsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// LoadEnvFiles loads .env files into the process environment.
// Missing files are ignored and variables already set are never overwritten.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Credentials returns the effective credentials for a carrier.
func (s *CredentialsService) Credentials(_ context.Context, carrierID string) (domain.CarrierCredentials, error) {
	id := normaliseCarrierKey(carrierID)
	if id == "" {
		return domain.CarrierCredentials{}, fmt.Errorf("%w: carrier id is required", domain.ErrInvalidInput)
	}

	return domain.CarrierCredentials{
		APIKey:    s.lookup(id, "api_key"),
		SecretKey: s.lookup(id, "secret_key"),
	}, nil
}

// SetCredentials stores credentials for a carrier in the config file.
func (s *CredentialsService) SetCredentials(_ context.Context, carrierID string, creds domain.CarrierCredentials) error {
	id := normaliseCarrierKey(carrierID)
	if id == "" {
		return fmt.Errorf("%w: carrier id is required", domain.ErrInvalidInput)
	}
	if !creds.IsConfigured() {
		return fmt.Errorf("%w: api key and secret key are required", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(id+".api_key", creds.APIKey); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	if err := s.configStore.Set(id+".secret_key", creds.SecretKey); err != nil {
		return fmt.Errorf("save secret key: %w", err)
	}
	return nil
}

func (s *CredentialsService) lookup(carrierID, field string) string {
	if v := s.getenv(EnvKey(carrierID, field)); v != "" {
		return v
	}
	return s.configStore.GetString(carrierID + "." + field)
}

// EnvKey returns the environment variable that overrides a credential field.
func EnvKey(carrierID, field string) string {
	return "PARCELS_" + strings.ToUpper(carrierID) + "_" + strings.ToUpper(field)
}
