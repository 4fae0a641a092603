// Package flow ties the sign-in, sign-up and logout outcomes to feedback
// messages and delayed navigation.
package flow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/constants"
	"github.com/Paintersrp/noted/internal/credentials"
	"github.com/Paintersrp/noted/internal/feedback"
	"github.com/Paintersrp/noted/internal/logging"
	"github.com/Paintersrp/noted/internal/session"
)

const (
	MsgSignedIn     = "Logged in successfully!"
	MsgSignInFailed = "Login failed: Invalid credentials"
	MsgRegistered   = "Registered successfully! Redirecting to Sign in..."
	MsgLoggedOut    = "Successfully logged out!"
)

type Route int

const (
	RouteSignIn Route = iota
	RouteSignUp
	RouteNotes
)

func (r Route) String() string {
	switch r {
	case RouteSignIn:
		return "sign-in"
	case RouteSignUp:
		return "sign-up"
	case RouteNotes:
		return "notes"
	default:
		return "unknown"
	}
}

type Navigator interface {
	Navigate(r Route)
}

type NavigatorFunc func(r Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

type Auth interface {
	Login(ctx context.Context, req api.LoginRequest) (string, error)
	Register(ctx context.Context, req api.RegisterRequest) error
}

type Sessions interface {
	SetToken(token string, user *session.UserProfile) error
	Logout() error
}

// Delays are how long each outcome message stays up before navigation.
type Delays struct {
	Logout time.Duration
	SignIn time.Duration
	SignUp time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Logout: constants.LogoutFeedbackDelay,
		SignIn: constants.SignInFeedbackDelay,
		SignUp: constants.SignUpFeedbackDelay,
	}
}

// Flows owns two feedback channels: Toast for transient outcome messages and
// Inline for the sticky sign-up error shown under the form.
type Flows struct {
	Toast  *feedback.Channel
	Inline *feedback.Channel

	auth     Auth
	sessions Sessions
	nav      Navigator
	delays   Delays
	logger   *zap.Logger
}

func New(auth Auth, sessions Sessions, nav Navigator, clock feedback.Clock, delays Delays, logger *zap.Logger) *Flows {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flows{
		Toast:    feedback.New(clock),
		Inline:   feedback.New(clock),
		auth:     auth,
		sessions: sessions,
		nav:      nav,
		delays:   delays,
		logger:   logger,
	}
}

// SignIn logs in and stores the session. Every failure after the required
// check shows the same message.
func (f *Flows) SignIn(ctx context.Context, email, password string) error {
	if err := credentials.ValidateSignIn(credentials.SignIn{Email: email, Password: password}); err != nil {
		f.Toast.Post(err.Error(), feedback.Error, f.delays.SignIn)
		return err
	}

	token, err := f.auth.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err == nil {
		err = f.sessions.SetToken(token, profile(token, email))
	}
	if err != nil {
		f.logger.Warn("sign in failed", zap.String(logging.FieldAction, "sign_in"), zap.Error(err))
		f.Toast.Post(MsgSignInFailed, feedback.Error, f.delays.SignIn)
		return err
	}

	f.logger.Info("signed in", zap.String(logging.FieldAction, "sign_in"))
	f.Toast.PostThen(MsgSignedIn, feedback.Success, f.delays.SignIn, func() {
		f.nav.Navigate(RouteNotes)
	})
	return nil
}

// SignUp validates the form and registers. Field errors come back without a
// network call; server failures stay on the Inline channel until the next try.
func (f *Flows) SignUp(ctx context.Context, form credentials.SignUp) error {
	f.Inline.Clear()

	if errs := credentials.ValidateSignUp(form); errs != nil {
		return errs
	}

	err := f.auth.Register(ctx, api.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		f.logger.Warn("registration failed", zap.String(logging.FieldAction, "sign_up"), zap.Error(err))
		f.Inline.PostSticky(credentials.RegistrationMessage(api.Detail(err)), feedback.Error)
		return err
	}

	f.logger.Info("registered", zap.String(logging.FieldAction, "sign_up"))
	f.Toast.PostThen(MsgRegistered, feedback.Success, f.delays.SignUp, func() {
		f.nav.Navigate(RouteSignIn)
	})
	return nil
}

// Logout ends the session and sends the user to sign-in once the message
// expires.
func (f *Flows) Logout() error {
	err := f.sessions.Logout()
	if err != nil {
		f.logger.Warn("logout incomplete", zap.String(logging.FieldAction, "logout"), zap.Error(err))
	}

	f.Toast.PostThen(MsgLoggedOut, feedback.Success, f.delays.Logout, func() {
		f.nav.Navigate(RouteSignIn)
	})
	return err
}

// Teardown drops pending messages along with any navigation they would
// trigger.
func (f *Flows) Teardown() {
	f.Toast.Clear()
	f.Inline.Clear()
}

func profile(token, email string) *session.UserProfile {
	u := &session.UserProfile{Email: email}
	if claims, err := session.ParseClaims(token); err == nil {
		u.ID = claims.Subject
	}
	return u
}
