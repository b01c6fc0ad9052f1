package bootstrap

import (
	"context"
	"fmt"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/database/models"
	"ecclesia-backend/internal/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=runner.go -destination=../mocks/bootstrap_mocks.go -package=mocks

// AuthProvider resolves the principal of the current session. A nil
// principal with a nil error means there is no session.
type AuthProvider interface {
	CurrentPrincipal(ctx context.Context) (*auth.Principal, error)
}

// TenantStore inserts one tenant and fills in its backend-generated fields
type TenantStore interface {
	Create(ctx context.Context, tenant *models.Tenant) error
}

// ProfileStore inserts one profile
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
}

// Reporter receives human-readable progress messages. It may be nil.
type Reporter func(message string)

// Progress messages, in the order a successful run emits them
const (
	MsgAuthenticating = "authenticating"
	MsgCreatingTenant = "creating tenant"
	MsgLinkingProfile = "configuring profile"
	MsgDone           = "done"
)

// RetryMessage is emitted before every provisioning attempt after the first
func RetryMessage(attempt, maxAttempts int) string {
	return fmt.Sprintf("synchronizing database (attempt %d of %d)", attempt, maxAttempts)
}

// SetupHint is the operator message for access-policy rejections
const SetupHint = "permission denied by row-level security policy; re-run the backend setup script"

// Request is the operator input for one run
type Request struct {
	TenantName   string
	OperatorName string
}

// Result describes a finished run. On failure it is still returned with the
// attempts made and the states visited.
type Result struct {
	TenantID  uuid.UUID
	ProfileID uuid.UUID
	Attempts  int
	States    []State
}

// Runner executes the tenant bootstrap procedure: session guard, tenant
// provisioning with bounded retry, profile linking, completion signal.
type Runner struct {
	auth     AuthProvider
	tenants  TenantStore
	profiles ProfileStore
	policy   Policy
	sleeper  Sleeper
}

// Option configures a Runner
type Option func(*Runner)

// WithPolicy overrides the default retry policy
func WithPolicy(p Policy) Option {
	return func(r *Runner) {
		if p.MaxAttempts < 1 {
			p.MaxAttempts = 1
		}
		if p.Backoff == nil {
			p.Backoff = backoff.NewConstantBackOff(DefaultBackoff)
		}
		r.policy = p
	}
}

// WithSleeper replaces the timer used between attempts
func WithSleeper(s Sleeper) Option {
	return func(r *Runner) {
		if s != nil {
			r.sleeper = s
		}
	}
}

// NewRunner creates a runner over the given collaborators
func NewRunner(authProvider AuthProvider, tenants TenantStore, profiles ProfileStore, opts ...Option) *Runner {
	r := &Runner{
		auth:     authProvider,
		tenants:  tenants,
		profiles: profiles,
		policy:   DefaultPolicy(),
		sleeper:  timerSleeper{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxAttempts returns the provisioning attempt ceiling
func (r *Runner) MaxAttempts() int {
	return r.policy.MaxAttempts
}

type run struct {
	*Runner
	m      *machine
	log    *logger.Logger
	report Reporter
	result *Result
}

// Run executes one bootstrap. onComplete is invoked exactly once, synchronously,
// after both writes succeed and never on failure. A Runner is safe for
// concurrent use only when its Policy's BackOff is stateless.
func (r *Runner) Run(ctx context.Context, req Request, report Reporter, onComplete func()) (*Result, error) {
	x := &run{
		Runner: r,
		m:      newMachine(),
		log:    logger.WithContext(ctx).WithField("tenant_name", req.TenantName),
		report: report,
		result: &Result{},
	}

	principal, err := x.guard(ctx)
	if err != nil {
		return x.fail(err)
	}
	x.log = x.log.WithField("principal_id", principal.ID.String())

	if err := x.advance(StateProvisioning); err != nil {
		return x.fail(err)
	}
	tenant, err := x.provision(ctx, principal, req.TenantName)
	if err != nil {
		return x.fail(err)
	}
	x.result.TenantID = tenant.ID

	if err := x.advance(StateLinking); err != nil {
		return x.fail(err)
	}
	profile, err := x.link(ctx, principal, tenant, req.OperatorName)
	if err != nil {
		return x.fail(err)
	}
	x.result.ProfileID = profile.ID

	if err := x.advance(StateDone); err != nil {
		return x.fail(err)
	}
	x.emit(MsgDone)
	x.result.States = x.m.states()
	x.log.WithFields(map[string]interface{}{
		"tenant_id": tenant.ID.String(),
		"attempts":  x.result.Attempts,
	}).Info("bootstrap completed")

	if onComplete != nil {
		onComplete()
	}
	return x.result, nil
}

func (x *run) emit(msg string) {
	if x.report != nil {
		x.report(msg)
	}
}

func (x *run) advance(next State) error {
	from := x.m.current
	if err := x.m.to(next); err != nil {
		return &Error{Kind: KindUnknown, Op: "transition", Message: err.Error(), Err: err}
	}
	x.log.Debugf("bootstrap state %s -> %s", from, next)
	return nil
}

func (x *run) fail(err error) (*Result, error) {
	if !x.m.current.Terminal() {
		_ = x.m.to(StateFailed)
	}
	x.result.States = x.m.states()
	x.log.WithError(err).WithFields(map[string]interface{}{
		"kind":     KindOf(err).String(),
		"attempts": x.result.Attempts,
	}).Error("bootstrap failed")
	return x.result, err
}

func (x *run) guard(ctx context.Context) (*auth.Principal, error) {
	x.emit(MsgAuthenticating)
	principal, err := x.auth.CurrentPrincipal(ctx)
	if err != nil {
		return nil, &Error{Kind: KindUnauthenticated, Op: "session", Message: err.Error(), Err: err}
	}
	if principal == nil || principal.ID == uuid.Nil {
		return nil, &Error{Kind: KindUnauthenticated, Op: "session", Message: noSessionMessage}
	}
	return principal, nil
}

func abandoned(op string, attempts int, err error) *Error {
	return &Error{Kind: KindUnknown, Op: op, Message: "bootstrap abandoned", Attempts: attempts, Err: err}
}

func (x *run) provision(ctx context.Context, principal *auth.Principal, name string) (*models.Tenant, error) {
	maxAttempts := x.policy.MaxAttempts
	x.policy.Backoff.Reset()

	var lastCode, lastMessage string
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, abandoned("provision", x.result.Attempts, err)
		}
		if attempt == 1 {
			x.emit(MsgCreatingTenant)
		} else {
			x.emit(RetryMessage(attempt, maxAttempts))
		}

		// Each attempt is a fresh insert; nothing from a failed one is reused.
		tenant := &models.Tenant{Name: name, CreatedBy: principal.ID}
		x.result.Attempts = attempt
		err := x.tenants.Create(ctx, tenant)
		if err == nil {
			if tenant.ID == uuid.Nil {
				return nil, &Error{Kind: KindUnknown, Op: "provision", Message: "data store returned a tenant without an id", Attempts: attempt}
			}
			return tenant, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, abandoned("provision", attempt, ctxErr)
		}

		code, message, _ := BackendDetails(err)
		switch Classify(err) {
		case KindTransientSchema:
		case KindPermissionDenied:
			return nil, &Error{Kind: KindPermissionDenied, Op: "provision", Code: code, Message: SetupHint, Attempts: attempt, Err: err}
		default:
			if message == "" {
				message = err.Error()
			}
			return nil, &Error{Kind: KindUnknown, Op: "provision", Code: code, Message: message, Attempts: attempt, Err: err}
		}

		lastCode, lastMessage, lastErr = code, message, err
		if attempt == maxAttempts {
			break
		}
		wait := x.policy.Backoff.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		x.log.WithFields(map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": maxAttempts,
			"code":         code,
			"backoff":      wait.String(),
		}).Warn("schema not ready, retrying tenant insert")
		if err := x.advance(StateProvisioning); err != nil {
			return nil, err
		}
		if err := x.sleeper.Sleep(ctx, wait); err != nil {
			return nil, abandoned("provision", attempt, err)
		}
	}

	return nil, &Error{
		Kind:     KindProvisioningTimeout,
		Op:       "provision",
		Code:     lastCode,
		Message:  lastMessage,
		Attempts: x.result.Attempts,
		Err:      lastErr,
	}
}

func (x *run) link(ctx context.Context, principal *auth.Principal, tenant *models.Tenant, operatorName string) (*models.Profile, error) {
	x.emit(MsgLinkingProfile)
	profile := &models.Profile{
		ID:       principal.ID,
		TenantID: tenant.ID,
		FullName: operatorName,
		Email:    principal.Email,
		Role:     models.TopRole,
	}

	err := x.profiles.Create(ctx, profile)
	if err == nil {
		return profile, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, abandoned("link", x.result.Attempts, ctxErr)
	}

	code, message, _ := BackendDetails(err)
	switch Classify(err) {
	case KindPermissionDenied:
		return nil, &Error{Kind: KindPermissionDenied, Op: "link", Code: code, Message: SetupHint, Err: err}
	case KindTransientSchema:
		// Linking is never retried. A schema miss here means setup is incomplete.
		return nil, &Error{Kind: KindUnknown, Op: "link", Code: code, Message: message + "; re-run the backend setup script", Err: err}
	default:
		if message == "" {
			message = err.Error()
		}
		return nil, &Error{Kind: KindUnknown, Op: "link", Code: code, Message: message, Err: err}
	}
}
