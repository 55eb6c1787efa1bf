package loginflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/core/users"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
)

// Registry is the part of users.Registry the flow needs.
type Registry interface {
	Authenticate(ctx context.Context, username, password string) (users.Record, error)
	SignUp(ctx context.Context, username, password string) (users.Record, error)
}

// Session is the part of session.Store the flow needs.
type Session interface {
	Login(ctx context.Context) error
}

// Success is emitted after a submission logs the session in.
type Success struct {
	Username string
	// From is the state the submission was made in.
	From State
}

// Flow drives the dialog.
type Flow struct {
	mu       sync.Mutex
	registry Registry
	session  Session
	state    *broadcast.Subject[State]
	success  *broadcast.Topic[Success]
	logger   *slog.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// New returns a closed flow.
func New(registry Registry, session Session, opts ...Option) *Flow {
	f := &Flow{
		registry: registry,
		session:  session,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	onPanic := broadcast.WithPanicHandler(func(err error) {
		f.logger.Warn("login flow subscriber failed", logger.Component("loginflow"), logger.Error(err))
	})
	f.state = broadcast.NewSubject(Closed, onPanic)
	f.success = broadcast.NewTopic[Success](onPanic)
	return f
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state.Value()
}

// Open shows the login form.
func (f *Flow) Open() error {
	return f.fire(eventOpen)
}

// ToggleMode switches between the login and sign-up forms.
func (f *Flow) ToggleMode() error {
	return f.fire(eventToggle)
}

// Cancel closes the dialog without side effects.
func (f *Flow) Cancel() error {
	return f.fire(eventCancel)
}

// SubmitLogin authenticates and, on success, logs the session in and closes
// the dialog. Failures leave the dialog in OpenLogin.
func (f *Flow) SubmitLogin(ctx context.Context, username, password string) error {
	f.mu.Lock()
	if err := f.require(OpenLogin); err != nil {
		f.mu.Unlock()
		return err
	}

	if _, err := f.registry.Authenticate(ctx, username, password); err != nil {
		f.mu.Unlock()
		f.logger.InfoContext(ctx, "login rejected",
			logger.Component("loginflow"), logger.Username(username), logger.Error(err))
		return err
	}

	return f.succeed(ctx, username)
}

// SubmitSignUp registers a new user and, on success, logs the session in and
// closes the dialog. A mismatched confirmation fails before the registry is
// consulted. Failures leave the dialog in OpenSignUp.
func (f *Flow) SubmitSignUp(ctx context.Context, username, password, confirmPassword string) error {
	f.mu.Lock()
	if err := f.require(OpenSignUp); err != nil {
		f.mu.Unlock()
		return err
	}

	if password != confirmPassword {
		f.mu.Unlock()
		return ErrPasswordMismatch
	}

	if _, err := f.registry.SignUp(ctx, username, password); err != nil {
		f.mu.Unlock()
		f.logger.InfoContext(ctx, "sign up rejected",
			logger.Component("loginflow"), logger.Username(username), logger.Error(err))
		return err
	}

	return f.succeed(ctx, username)
}

// OnSuccess subscribes to successful submissions.
func (f *Flow) OnSuccess(fn func(Success)) *broadcast.Subscription {
	return f.success.Subscribe(fn)
}

// Subscribe receives the current state immediately and then every change.
func (f *Flow) Subscribe(fn func(State)) *broadcast.Subscription {
	return f.state.Subscribe(fn)
}

// Close detaches all subscribers.
func (f *Flow) Close() {
	f.state.Close()
	f.success.Close()
}

// succeed is called with f.mu held and releases it.
func (f *Flow) succeed(ctx context.Context, username string) error {
	from := f.state.Value()
	if err := f.session.Login(ctx); err != nil {
		f.mu.Unlock()
		return err
	}

	to, err := next(from, eventSucceed)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.state.Queue(to)
	f.mu.Unlock()
	f.state.Flush()

	f.logger.InfoContext(ctx, "user logged in",
		logger.Component("loginflow"), logger.Username(username), logger.Action(from.String()))
	f.success.Publish(Success{Username: username, From: from})
	return nil
}

func (f *Flow) fire(e event) error {
	defer f.state.Flush()
	f.mu.Lock()
	defer f.mu.Unlock()

	to, err := next(f.state.Value(), e)
	if err != nil {
		return err
	}
	f.state.Queue(to)
	return nil
}

func (f *Flow) require(s State) error {
	if cur := f.state.Value(); cur != s {
		return fmt.Errorf("%w: submit in %s", ErrInvalidTransition, cur)
	}
	return nil
}
