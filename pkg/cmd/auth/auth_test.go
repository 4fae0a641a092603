package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/pkg/cmd/auth"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil/cmdtest"
)

func TestLoginWithFlags(t *testing.T) {
	cmdtest.Interactive(t, false)
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "")

	out, err := cmdtest.Run(auth.NewCmdAuth(s), "login", "-e", "ana@gmail.com", "-p", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, out, flow.MsgSignedIn)

	current := s.Sessions.Current()
	assert.Equal(t, "tok", current.Token)
	require.NotNil(t, current.User)
	assert.Equal(t, "ana@gmail.com", current.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	cmdtest.Interactive(t, false)
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "")

	out, err := cmdtest.Run(auth.NewCmdAuth(s), "login", "-e", "ana@gmail.com", "-p", "nope123")
	assert.Error(t, err)
	assert.Contains(t, out, flow.MsgSignInFailed)
	assert.False(t, s.Sessions.Current().Authenticated())
}

func TestLoginAlreadySignedIn(t *testing.T) {
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "old")

	out, err := cmdtest.Run(auth.NewCmdAuth(s), "login", "-e", "ana@gmail.com", "-p", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, out, "already authenticated")
	assert.Equal(t, "old", s.Sessions.Current().Token)
}

func TestRegisterFieldErrors(t *testing.T) {
	cmdtest.Interactive(t, false)
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "")

	out, err := cmdtest.Run(auth.NewCmdAuth(s), "register", "-n", "Ana", "-e", "ana@yahoo.com", "-p", "abc")
	assert.Error(t, err)
	assert.Contains(t, out, "email: ")
	assert.Contains(t, out, "password: ")
	assert.NotContains(t, out, "name: ")
}

func TestRegisterServerDetail(t *testing.T) {
	cmdtest.Interactive(t, false)
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "")

	_, err := cmdtest.Run(auth.NewCmdAuth(s), "register", "-n", "Ana", "-e", "taken@gmail.com", "-p", "abcdefg")
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestRegisterSuccess(t *testing.T) {
	cmdtest.Interactive(t, false)
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "")

	out, err := cmdtest.Run(auth.NewCmdAuth(s), "register", "-n", "Ana", "-e", "ana@gmail.com", "-p", "abcdefg")
	require.NoError(t, err)
	assert.Contains(t, out, flow.MsgRegistered)
	assert.False(t, s.Sessions.Current().Authenticated())
}

func TestLogoutThenStatus(t *testing.T) {
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "tok")

	out, err := cmdtest.Run(auth.NewCmdAuth(s), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in")
	assert.Contains(t, out, "token:   opaque")

	out, err = cmdtest.Run(auth.NewCmdAuth(s), "logout")
	require.NoError(t, err)
	assert.Contains(t, out, flow.MsgLoggedOut)

	_, err = cmdtest.Run(auth.NewCmdAuth(s), "status")
	assert.ErrorIs(t, err, cmdutil.ErrNotSignedIn)
}
