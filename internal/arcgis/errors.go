package arcgis

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Common errors returned by the admin client
var (
	// ErrNoToken indicates the token exchange did not produce a token
	ErrNoToken = errors.New("arcgis: no token")

	// ErrServiceNotFound indicates the server has no service at the given path
	ErrServiceNotFound = errors.New("arcgis: service not found")

	// ErrMissingStatus indicates a status response without a realTimeState
	ErrMissingStatus = errors.New("arcgis: status response missing realTimeState")
)

// APIError is the error envelope the admin API returns, usually with HTTP 200:
//
//	{"status": "error", "messages": ["..."], "code": 404}
type APIError struct {
	Code     int
	Messages []string
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if msg == "" {
		msg = "unspecified error"
	}
	if e.Code != 0 {
		return fmt.Sprintf("arcgis: server error %d: %s", e.Code, msg)
	}
	return "arcgis: server error: " + msg
}

// NotFound reports whether the envelope describes a missing resource.
func (e *APIError) NotFound() bool {
	if e.Code == http.StatusNotFound {
		return true
	}
	for _, m := range e.Messages {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist") {
			return true
		}
	}
	return false
}

// Is lets errors.Is match ErrServiceNotFound against a not-found envelope.
func (e *APIError) Is(target error) bool {
	return target == ErrServiceNotFound && e.NotFound()
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("arcgis: request failed with status %d: %s", e.StatusCode, body)
}

// Is lets errors.Is match ErrServiceNotFound against HTTP 404.
func (e *HTTPError) Is(target error) bool {
	return target == ErrServiceNotFound && e.StatusCode == http.StatusNotFound
}

type envelope struct {
	Status   string          `json:"status"`
	Messages []string        `json:"messages"`
	Code     json.RawMessage `json:"code"`
}

// checkEnvelope returns an *APIError when body is an error envelope.
// Bodies that are not JSON objects are left for the caller to judge.
func checkEnvelope(body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if !strings.EqualFold(env.Status, "error") {
		return nil
	}
	apiErr := &APIError{Messages: env.Messages}
	var code int
	if err := json.Unmarshal(env.Code, &code); err == nil {
		apiErr.Code = code
	} else {
		var s string
		if err := json.Unmarshal(env.Code, &s); err == nil {
			fmt.Sscanf(s, "%d", &apiErr.Code)
		}
	}
	return apiErr
}
