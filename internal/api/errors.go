package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind classifies API failures.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindHTTP
	KindValidation
	KindUnauthorized
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a failed backend call. Message is safe to show to the user.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of an *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsUnauthorized reports whether err is an authentication expiry.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

const sessionExpiredMessage = "login expired, please log in again"

// parseError builds the Error for a non-2xx response body.
func parseError(status int, body []byte) *Error {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		msg := "request failed"
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
		return &Error{Kind: KindHTTP, StatusCode: status, Message: msg}
	}

	root := gjson.ParseBytes(body)
	detail := root.Get("detail")
	switch {
	case detail.IsArray():
		return &Error{
			Kind:       KindValidation,
			StatusCode: status,
			Message:    "validation failed: " + flattenValidation(detail),
		}
	case detail.Type == gjson.String && detail.String() != "":
		return &Error{Kind: kindForStatus(status), StatusCode: status, Message: detail.String()}
	case root.Get("message").Type == gjson.String:
		return &Error{Kind: kindForStatus(status), StatusCode: status, Message: root.Get("message").String()}
	}
	return &Error{Kind: kindForStatus(status), StatusCode: status, Message: fmt.Sprintf("HTTP %d", status)}
}

func kindForStatus(status int) Kind {
	if status == http.StatusUnprocessableEntity {
		return KindValidation
	}
	return KindHTTP
}

// flattenValidation renders field errors as "loc.path: msg; other: msg".
func flattenValidation(detail gjson.Result) string {
	var parts []string
	for _, item := range detail.Array() {
		var loc []string
		for _, seg := range item.Get("loc").Array() {
			loc = append(loc, seg.String())
		}
		field := strings.Join(loc, ".")
		if field == "" {
			field = "unknown field"
		}
		msg := item.Get("msg").String()
		if msg == "" {
			msg = "invalid value"
		}
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}
