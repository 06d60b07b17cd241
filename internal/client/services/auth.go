// Package services contains the application services of the AgroScan client:
// the auth gateway (login/registration against the backend) and the scan
// synchronizer (upload plus history reconciliation).
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/agroscanai/agroscan-cli/internal/client/alerts"
	"github.com/agroscanai/agroscan-cli/internal/client/api"
	"github.com/agroscanai/agroscan-cli/internal/client/models"
	"github.com/agroscanai/agroscan-cli/internal/logging"
)

const minPasswordLength = 6

const (
	MsgConnectFailed    = "Could not connect to the backend API."
	MsgUsernameRequired = "Username is required."
	MsgPasswordMismatch = "Passwords do not match."
	MsgPasswordTooShort = "Password must be at least 6 characters long."
	MsgRegistered       = "Registration successful. Please sign in."
)

// ErrValidation marks failures caught locally before any network call.
var ErrValidation = errors.New("validation failed")

// sessionActivator is the slice of the session manager the auth service
// drives on a successful login.
type sessionActivator interface {
	Login(ctx context.Context, userID, email, token string)
}

// AuthService performs login and registration. Outcomes are surfaced as
// alerts; the returned error tells the caller whether the operation
// succeeded, never carries an unhandled failure.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, username, email string, password, confirm []byte) error
}

type authService struct {
	client  api.Client
	session sessionActivator
	alerts  *alerts.Center
	logger  logging.Logger
}

func NewAuthService(client api.Client, session sessionActivator, center *alerts.Center, logger logging.Logger) AuthService {
	return &authService{client: client, session: session, alerts: center, logger: logger}
}

// Login exchanges credentials for a token and activates the session. A
// connectivity failure and a rejected response produce differently worded
// alerts so the user can tell them apart.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		a.publishFailure(ctx, err, "Login failed. Check your credentials.")
		return err
	}

	a.session.Login(ctx, res.UserID, res.Email, res.Token)
	return nil
}

// Register creates an account. Local preconditions are checked first; each
// produces its own alert and short-circuits the request. Success navigates
// the user to sign-in but does not activate a session.
func (a *authService) Register(ctx context.Context, username, email string, password, confirm []byte) error {
	if username == "" {
		a.alerts.Publish(MsgUsernameRequired, models.AlertError)
		return fmt.Errorf("%w: %s", ErrValidation, MsgUsernameRequired)
	}
	if !bytes.Equal(password, confirm) {
		a.alerts.Publish(MsgPasswordMismatch, models.AlertError)
		return fmt.Errorf("%w: %s", ErrValidation, MsgPasswordMismatch)
	}
	if len(password) < minPasswordLength {
		a.alerts.Publish(MsgPasswordTooShort, models.AlertError)
		return fmt.Errorf("%w: %s", ErrValidation, MsgPasswordTooShort)
	}

	if err := a.client.Register(ctx, username, email, string(password)); err != nil {
		a.publishFailure(ctx, err, "Registration failed.")
		return err
	}

	a.alerts.Publish(MsgRegistered, models.AlertSuccess)
	return nil
}

// publishFailure translates a transport error into the connectivity notice
// and a rejected response into its normalized message. A 401/403 on the auth
// endpoints means the credentials themselves were refused.
func (a *authService) publishFailure(ctx context.Context, err error, rejectedDefault string) {
	var rejected *api.RejectedError
	switch {
	case errors.Is(err, api.ErrUnavailable):
		a.alerts.Publish(MsgConnectFailed, models.AlertError)
	case errors.Is(err, api.ErrUnauthorized):
		a.alerts.Publish(rejectedDefault, models.AlertError)
	case errors.As(err, &rejected):
		a.alerts.Publish(rejected.Message, models.AlertError)
	default:
		a.logger.Error(ctx, "auth request failed", "error", err)
		a.alerts.Publish(err.Error(), models.AlertError)
	}
}
