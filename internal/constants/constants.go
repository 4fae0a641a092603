package constants

import "time"

const (
	Version        = `0.1.0`
	AppName        = `noted`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.noted/`
	SessionFile    = `session.yaml`
	LogFile        = `noted.log`
	EnvPrefix      = `NOTED`

	DefaultAPIURL = `http://localhost:8000`

	// Durable storage keys shared with the web client.
	TokenKey = `token`
	UserKey  = `user`
)

const (
	LogoutFeedbackDelay = 5 * time.Second
	SignInFeedbackDelay = 3 * time.Second
	SignUpFeedbackDelay = 3 * time.Second
)
