package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrInvalidCredentials marks a login rejected by the service, as opposed
// to a transport failure that never reached it.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Error is a non-2xx response from the service. Field holds per-field
// validation messages parsed from 4xx bodies; callers surface them verbatim
// on the active form, falling back to Message.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("%s (%d)", http.StatusText(e.Status), e.Status)
}

// FieldError returns the first validation message for the named field,
// or "" when the field has none.
func (e *Error) FieldError(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// FieldNames returns the fields carrying validation messages, sorted.
func (e *Error) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidation reports whether err is a 4xx service error carrying
// field-level messages.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 && len(apiErr.Fields) > 0
}

// IsUnauthorized reports whether err is a 401 from the service, which the
// client treats as an expired or revoked token.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// decodeError builds an *Error from a non-2xx body. The service emits
// either {"detail": "..."} or a field->messages map; anything unparsable
// keeps the raw body as the message.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	for field, val := range raw {
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			if field == "detail" || field == "error" {
				apiErr.Message = single
				continue
			}
			addField(apiErr, field, single)
			continue
		}
		var many []string
		if err := json.Unmarshal(val, &many); err == nil {
			if field == "non_field_errors" && len(many) > 0 {
				apiErr.Message = many[0]
				continue
			}
			for _, m := range many {
				addField(apiErr, field, m)
			}
		}
	}

	if apiErr.Message == "" && len(apiErr.Fields) > 0 {
		apiErr.Message = "validation failed"
	}
	return apiErr
}

func addField(e *Error, field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
