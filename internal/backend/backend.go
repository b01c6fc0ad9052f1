package backend

import (
	"context"
	"fmt"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/backend/rest"
	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/config"
	"ecclesia-backend/internal/database"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/repository"

	"gorm.io/gorm"
)

// Pinger reports whether the data store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores bundles the collaborators the application needs from a data store
type Stores struct {
	Kind     string
	Tenants  repository.TenantRepositoryInterface
	Profiles repository.ProfileRepositoryInterface
	Auth     bootstrap.AuthProvider
	Health   Pinger
	closer   func() error
}

// Open connects to the data store selected by cfg.DataStore
func Open(cfg *config.Config) (*Stores, error) {
	switch cfg.DataStore {
	case "", config.DataStorePostgres:
		db, err := database.Initialize(cfg.DatabaseURL, &database.Options{SkipMigrate: !cfg.AutoMigrate})
		if err != nil {
			return nil, err
		}
		return NewPostgres(db), nil
	case config.DataStoreREST:
		client, err := rest.NewClient(rest.Options{
			BaseURL: cfg.RESTURL,
			APIKey:  cfg.RESTAPIKey,
			Timeout: cfg.RESTTimeout,
		})
		if err != nil {
			return nil, err
		}
		return NewREST(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDataStore, cfg.DataStore)
	}
}

// NewPostgres wires the gorm repositories. Principals come from the request
// context populated by the JWT middleware.
func NewPostgres(db *gorm.DB) *Stores {
	return &Stores{
		Kind:     config.DataStorePostgres,
		Tenants:  repository.NewTenantRepository(db),
		Profiles: repository.NewProfileRepository(db),
		Auth:     auth.NewContextProvider(),
		Health:   gormPinger{db: db},
		closer: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// NewREST wires the hosted REST stores. Principals are confirmed against the
// hosted auth API.
func NewREST(client *rest.Client) *Stores {
	return &Stores{
		Kind:     config.DataStoreREST,
		Tenants:  rest.NewTenantStore(client),
		Profiles: rest.NewProfileStore(client),
		Auth:     rest.NewAuthProvider(client),
		Health:   client,
	}
}

// Runner builds a bootstrap runner over these stores with the retry policy
// from cfg. Extra options are applied after the policy.
func (s *Stores) Runner(cfg *config.Config, opts ...bootstrap.Option) *bootstrap.Runner {
	all := append([]bootstrap.Option{
		bootstrap.WithPolicy(bootstrap.NewPolicy(cfg.BootstrapMaxAttempts, cfg.BootstrapBackoff)),
	}, opts...)
	return bootstrap.NewRunner(s.Auth, s.Tenants, s.Profiles, all...)
}

// Close releases the underlying connection pool, if any
func (s *Stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
