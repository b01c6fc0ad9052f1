package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/database/models"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/logger"
	"ecclesia-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BootstrapService provisions a tenant and its first administrator for the calling principal
type BootstrapService struct {
	runner    Bootstrapper
	profiles  repository.ProfileRepositoryInterface
	validator *validator.Validate

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(runner Bootstrapper, profiles repository.ProfileRepositoryInterface, validator *validator.Validate) *BootstrapService {
	return &BootstrapService{
		runner:    runner,
		profiles:  profiles,
		validator: validator,
		inFlight:  make(map[uuid.UUID]struct{}),
	}
}

// BootstrapRequest represents the setup form
type BootstrapRequest struct {
	TenantName string `json:"tenant_name" validate:"required,min=1,max=200" example:"Comunidade Vida Nova"`
	FullName   string `json:"full_name" validate:"required,min=1,max=200" example:"Pr. João Silva"`
}

// BootstrapResponse describes a completed bootstrap
type BootstrapResponse struct {
	TenantID    uuid.UUID   `json:"tenant_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProfileID   uuid.UUID   `json:"profile_id" example:"6f1c2a9e-3b1d-4e8a-9c4f-2d7e5b8a1c3f"`
	Role        models.Role `json:"role" example:"super_admin"`
	Attempts    int         `json:"attempts" example:"3"`
	MaxAttempts int         `json:"max_attempts" example:"15"`
	States      []string    `json:"states"`
	Progress    []string    `json:"progress"`
}

// Bootstrap validates the request, refuses principals that already have a
// profile or a bootstrap running, then runs the procedure. Progress messages
// are forwarded to report as they happen.
func (s *BootstrapService) Bootstrap(ctx context.Context, req *BootstrapRequest, report bootstrap.Reporter, onComplete func()) (*BootstrapResponse, error) {
	req.TenantName = strings.TrimSpace(req.TenantName)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", apperrors.NewValidationError(firstInvalidField(err), err.Error()))
	}

	log := logger.WithContext(ctx)

	// Without a principal there is nothing to lock or look up; the session
	// guard inside the runner rejects the call.
	if principal, ok := auth.PrincipalFromContext(ctx); ok {
		release, err := s.acquire(principal.ID)
		if err != nil {
			return nil, err
		}
		defer release()

		if err := s.ensureNotProvisioned(ctx, principal.ID); err != nil {
			return nil, err
		}
	}

	response := &BootstrapResponse{MaxAttempts: s.runner.MaxAttempts()}
	collect := func(msg string) {
		response.Progress = append(response.Progress, msg)
		if report != nil {
			report(msg)
		}
	}

	result, err := s.runner.Run(ctx, bootstrap.Request{TenantName: req.TenantName, OperatorName: req.FullName}, collect, onComplete)
	if err != nil {
		return nil, err
	}

	response.TenantID = result.TenantID
	response.ProfileID = result.ProfileID
	response.Role = models.TopRole
	response.Attempts = result.Attempts
	for _, st := range result.States {
		response.States = append(response.States, st.String())
	}
	log.WithField("tenant_id", result.TenantID.String()).Info("tenant bootstrapped")
	return response, nil
}

func (s *BootstrapService) acquire(principalID uuid.UUID) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[principalID]; busy {
		return nil, apperrors.ErrBootstrapInProgress
	}
	s.inFlight[principalID] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inFlight, principalID)
		s.mu.Unlock()
	}, nil
}

// ensureNotProvisioned fails with ErrProfileExists when the principal already
// has a profile. A schema that is not visible yet means there can be no
// profile, so the run proceeds and the runner's retry loop takes over.
func (s *BootstrapService) ensureNotProvisioned(ctx context.Context, principalID uuid.UUID) error {
	existing, err := s.profiles.GetByID(ctx, principalID)
	switch {
	case err == nil && existing != nil:
		return apperrors.ErrProfileExists
	case err == nil, apperrors.IsNotFound(err):
		return nil
	case bootstrap.Classify(err) == bootstrap.KindTransientSchema:
		logger.WithContext(ctx).WithError(err).Debug("profile lookup hit an unready schema, continuing")
		return nil
	default:
		return fmt.Errorf("failed to check existing profile: %w", err)
	}
}

func firstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
