package config

import (
	"fmt"
	"strings"
)

// InitError is returned when the loaded config cannot be used.
type InitError struct {
	Field string
	msg   string
}

func (e *InitError) Error() string {
	if e.Field == "" {
		return e.msg
	}
	return fmt.Sprintf("config %s: %s", e.Field, e.msg)
}

var fieldKeys = map[string]string{
	"APIURL":         "api_url",
	"SessionFile":    "session_file",
	"Storage":        "storage",
	"RequestTimeout": "request_timeout",
	"Log":            "log",
	"Level":          "level",
	"File":           "file",
	"RateLimit":      "rate_limit",
	"RPS":            "rps",
	"Burst":          "burst",
	"Render":         "render",
	"Style":          "style",
	"WordWrap":       "word_wrap",
	"Feedback":       "feedback",
	"Logout":         "logout",
	"SignIn":         "sign_in",
	"SignUp":         "sign_up",
	"Copy":           "copy",
}

// yamlKey turns "Config.Log.Level" into "log.level".
func yamlKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if key, ok := fieldKeys[p]; ok {
			parts[i] = key
		}
	}
	return strings.Join(parts, ".")
}

func quote(v any) string {
	return fmt.Sprintf("%q", fmt.Sprint(v))
}
