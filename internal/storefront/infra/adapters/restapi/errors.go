package restapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
)

// Kind classifies a backend failure.
type Kind int

const (
	KindTransport    Kind = iota + 1 // the request never produced a response
	KindStatus                       // non-2xx response
	KindMalformed                    // 2xx with a body that does not parse
	KindUnauthorized                 // 401 or 403
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// APIError is returned by every Client method that fails.
type APIError struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("restapi %s: %s %d: %s", e.Op, e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("restapi %s: %s %d", e.Op, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("restapi %s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("restapi %s: %s", e.Op, e.Kind)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets errors.Is match the port-level sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ports.ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ports.ErrNotFound:
		return e.Kind == KindStatus && e.Status == http.StatusNotFound
	}
	return false
}

// outcome labels a finished call for the Observer: "ok" or the error Kind.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return kindOf(err).String()
}

func kindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}
