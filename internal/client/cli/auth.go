package cli

import (
	"context"
	"os"

	"github.com/agroscanai/agroscan-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password (entered twice) and
// attempts to create a new account. Validation failures and server rejections
// surface as alerts; the password buffers are securely wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	err = a.auth.Register(ctx, username, email, password, confirm)
	a.showAlert()
	return err
}

// Login prompts for credentials and tries to authenticate. On success the
// session manager publishes a welcome alert and the scan history is loaded
// for the new identity. The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, password); err != nil {
		a.showAlert()
		return err
	}

	a.showAlert()
	a.scans.FetchHistory(ctx, a.session.Current().UserEmail)
	return nil
}

// Logout ends the active session with the standard farewell notice.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx, "")
	a.showAlert()
	return nil
}
