package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindTransport: the backend could not be reached or timed out.
	KindTransport Kind = iota + 1
	// KindAuth: the backend answered 401 and the session was cleared.
	KindAuth
	// KindBackend: any other 4xx/5xx, or a body that could not be decoded.
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindBackend:
		return "backend"
	}
	return "unknown"
}

const (
	msgTransport = "Unable to reach the server. Please try again."
	msgAuth      = "Your session has expired. Please log in again."
	msgDecode    = "Unexpected response from the server."
)

// Error is the only error type returned by VisitorClient.
// Message is safe to show to the user as-is.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuth reports whether err is a 401 from the backend.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth
}

// Message returns the user-facing text of any error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// check converts a resty outcome into an *Error, or nil on success.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return &Error{Kind: KindTransport, Message: msgTransport, Err: err}
	}
	if !resp.IsError() {
		return nil
	}

	status := resp.StatusCode()
	msg := payloadMessage(resp.Body())
	if status == http.StatusUnauthorized {
		if msg == "" {
			msg = msgAuth
		}
		return &Error{Kind: KindAuth, Status: status, Message: msg}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &Error{Kind: KindBackend, Status: status, Message: msg}
}

func decodeError(err error) error {
	return &Error{Kind: KindBackend, Message: msgDecode, Err: err}
}

// payloadMessage pulls a readable message out of the error bodies the
// backends in use produce: {"detail": "..."}, {"detail": [{"msg": "..."}]},
// {"message": "..."}, {"error": "..."} and {"field": ["..."]}.
func payloadMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	for _, key := range []string{"detail", "message", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(raw, &items) == nil {
			var msgs []string
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var list []string
		if json.Unmarshal(fields[k], &list) == nil && len(list) > 0 {
			if k == "non_field_errors" {
				return list[0]
			}
			return k + ": " + list[0]
		}
	}
	return ""
}
