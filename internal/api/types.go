package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// ID is the server's opaque note identifier. Numbers are accepted and kept as
// their decimal text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Timestamp decodes whatever date layout the server emits. Zero when absent.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339))), nil
}

type Note struct {
	ID         ID        `json:"note_id"`
	Title      string    `json:"note_title"`
	Content    string    `json:"note_content"`
	LastUpdate Timestamp `json:"last_update,omitempty"`
	CreatedOn  Timestamp `json:"created_on,omitempty"`
}

type NoteInput struct {
	Title   string `json:"note_title"`
	Content string `json:"note_content"`
}

type LoginRequest struct {
	Email    string `json:"user_email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"user_name"`
	Email    string `json:"user_email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createdResponse struct {
	ID ID `json:"note_id"`
}
