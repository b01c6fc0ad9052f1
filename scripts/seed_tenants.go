package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/backend"
	"ecclesia-backend/internal/config"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/logger"
	"ecclesia-backend/internal/service"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// TenantSeed is one entry of the seed file
type TenantSeed struct {
	PrincipalID string `yaml:"principal_id"`
	Email       string `yaml:"email"`
	TenantName  string `yaml:"tenant_name"`
	FullName    string `yaml:"full_name"`
}

type seedFile struct {
	Tenants []TenantSeed `yaml:"tenants"`
}

func main() {
	path := flag.String("file", "scripts/data/tenants.yaml", "YAML file listing the tenants to bootstrap")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, nil)

	seeds, err := loadSeeds(*path)
	if err != nil {
		logrus.Fatalf("Failed to read seed file: %v", err)
	}

	ctx := context.Background()
	stores, err := openWithRetry(ctx, cfg, 60, time.Second)
	if err != nil {
		logrus.Fatalf("Failed to open data store: %v", err)
	}
	defer stores.Close()

	svc := service.NewBootstrapService(stores.Runner(cfg), stores.Profiles, validator.New())
	created, skipped, err := seedTenants(ctx, svc, seeds)
	logrus.WithFields(logrus.Fields{"created": created, "skipped": skipped}).Info("Seeding finished")
	if err != nil {
		logrus.Fatalf("Seeding stopped: %v", err)
	}
}

func loadSeeds(path string) ([]TenantSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Tenants, nil
}

// openWithRetry waits for the data store to answer a ping, for dockerized
// Postgres startup.
func openWithRetry(ctx context.Context, cfg *config.Config, maxTries uint, delay time.Duration) (*backend.Stores, error) {
	return backoff.Retry(ctx, func() (*backend.Stores, error) {
		stores, err := backend.Open(cfg)
		if err != nil {
			return nil, err
		}
		if err := stores.Health.Ping(ctx); err != nil {
			_ = stores.Close()
			return nil, err
		}
		return stores, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(delay)),
		backoff.WithMaxTries(maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			logrus.WithError(err).Debugf("Data store not ready, retrying in %s", next)
		}),
	)
}

// seedTenants bootstraps every entry in order. Principals that already have a
// profile are skipped; any other failure stops the run.
func seedTenants(ctx context.Context, svc service.BootstrapServiceInterface, seeds []TenantSeed) (int, int, error) {
	var created, skipped int
	for i, seed := range seeds {
		id, err := uuid.Parse(seed.PrincipalID)
		if err != nil {
			return created, skipped, fmt.Errorf("entry %d: principal_id: %w", i, err)
		}
		principalCtx := auth.WithPrincipal(ctx, &auth.Principal{ID: id, Email: seed.Email})
		log := logger.WithContext(principalCtx).WithField("tenant_name", seed.TenantName)

		resp, err := svc.Bootstrap(principalCtx, &service.BootstrapRequest{TenantName: seed.TenantName, FullName: seed.FullName}, nil, nil)
		switch {
		case errors.Is(err, apperrors.ErrProfileExists):
			log.Info("Principal already has a tenant, skipping")
			skipped++
		case err != nil:
			return created, skipped, fmt.Errorf("entry %d (%s): %w", i, seed.TenantName, err)
		default:
			log.WithField("tenant_id", resp.TenantID.String()).Info("Tenant bootstrapped")
			created++
		}
	}
	return created, skipped, nil
}
