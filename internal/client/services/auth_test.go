package services

import (
	"context"
	"testing"

	"github.com/agroscanai/agroscan-cli/internal/client/api"
	"github.com/agroscanai/agroscan-cli/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SuccessActivatesSession(t *testing.T) {
	client := &fakeAPI{loginRes: &api.LoginResult{UserID: "42", Email: "a@b.com", Token: "tok"}}
	sess := &fakeSessionCtl{}
	center := testCenter()
	defer center.Close()

	svc := NewAuthService(client, sess, center, testLogger())

	err := svc.Login(context.Background(), "a@b.com", []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, 1, sess.loginCalls)
	assert.Equal(t, "42", sess.loginUser)
	assert.Equal(t, "a@b.com", sess.loginEmail)
	assert.Equal(t, "tok", sess.loginToken)
}

func TestLogin_TransportFailureShowsConnectivityNotice(t *testing.T) {
	client := &fakeAPI{loginErr: api.ErrUnavailable}
	sess := &fakeSessionCtl{}
	center := testCenter()
	defer center.Close()

	svc := NewAuthService(client, sess, center, testLogger())

	err := svc.Login(context.Background(), "a@b.com", []byte("pw"))
	require.Error(t, err)

	assert.Equal(t, MsgConnectFailed, center.Current().Text)
	assert.Equal(t, models.AlertError, center.Current().Kind)
	assert.Equal(t, 0, sess.loginCalls)
}

func TestLogin_RejectedShowsNormalizedMessage(t *testing.T) {
	client := &fakeAPI{loginErr: &api.RejectedError{Message: "email: value is not a valid email address"}}
	sess := &fakeSessionCtl{}
	center := testCenter()
	defer center.Close()

	svc := NewAuthService(client, sess, center, testLogger())

	err := svc.Login(context.Background(), "nope", []byte("pw"))
	require.Error(t, err)
	assert.Equal(t, "email: value is not a valid email address", center.Current().Text)
}

func TestLogin_UnauthorizedShowsCredentialNotice(t *testing.T) {
	client := &fakeAPI{loginErr: api.ErrUnauthorized}
	sess := &fakeSessionCtl{}
	center := testCenter()
	defer center.Close()

	svc := NewAuthService(client, sess, center, testLogger())

	err := svc.Login(context.Background(), "a@b.com", []byte("wrong"))
	require.Error(t, err)
	assert.Equal(t, "Login failed. Check your credentials.", center.Current().Text)
}

func TestRegister_LocalValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantMsg  string
	}{
		{name: "missing username", username: "", password: "secret1", confirm: "secret1", wantMsg: MsgUsernameRequired},
		{name: "password mismatch", username: "alice", password: "secret1", confirm: "secret2", wantMsg: MsgPasswordMismatch},
		{name: "password too short", username: "alice", password: "abc", confirm: "abc", wantMsg: MsgPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeAPI{}
			sess := &fakeSessionCtl{}
			center := testCenter()
			defer center.Close()

			svc := NewAuthService(client, sess, center, testLogger())

			err := svc.Register(context.Background(), tt.username, "a@b.com", []byte(tt.password), []byte(tt.confirm))
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.wantMsg, center.Current().Text)
			assert.Equal(t, 0, client.registerCalls, "validation failures must never reach the network")
		})
	}
}

func TestRegister_SuccessDoesNotActivateSession(t *testing.T) {
	client := &fakeAPI{}
	sess := &fakeSessionCtl{}
	center := testCenter()
	defer center.Close()

	svc := NewAuthService(client, sess, center, testLogger())

	err := svc.Register(context.Background(), "alice", "a@b.com", []byte("secret1"), []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, 1, client.registerCalls)
	assert.Equal(t, "alice", client.lastUsername)
	assert.Equal(t, MsgRegistered, center.Current().Text)
	assert.Equal(t, models.AlertSuccess, center.Current().Kind)
	assert.Equal(t, 0, sess.loginCalls, "registration does not imply login")
}

func TestRegister_RejectedShowsServerMessage(t *testing.T) {
	client := &fakeAPI{registerErr: &api.RejectedError{Message: "email already registered"}}
	sess := &fakeSessionCtl{}
	center := testCenter()
	defer center.Close()

	svc := NewAuthService(client, sess, center, testLogger())

	err := svc.Register(context.Background(), "alice", "a@b.com", []byte("secret1"), []byte("secret1"))
	require.Error(t, err)
	assert.Equal(t, "email already registered", center.Current().Text)
}
