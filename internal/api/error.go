package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is the typed result of any non-2xx backend response. Message is
// human-readable and safe to show in a form banner.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// decodeError extracts a message from an error response. Backends in the
// wild answer with {"error": ...}, {"message": ...}, or plain text; all
// three collapse into one Error here.
func decodeError(resp *http.Response) *Error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var shaped struct {
		Err string `json:"error"`
		Msg string `json:"message"`
	}
	if err := json.Unmarshal(b, &shaped); err == nil {
		if shaped.Err != "" {
			return &Error{Status: resp.StatusCode, Message: shaped.Err}
		}
		if shaped.Msg != "" {
			return &Error{Status: resp.StatusCode, Message: shaped.Msg}
		}
	}
	if text := strings.TrimSpace(string(b)); text != "" && len(text) < 200 {
		return &Error{Status: resp.StatusCode, Message: text}
	}
	return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}

func asError(err error, target **Error) bool {
	return err != nil && errors.As(err, target)
}
