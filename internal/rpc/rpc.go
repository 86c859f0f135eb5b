// Package rpc defines the record-level contract between the calendar
// workflow and the service-order backend: read records by id, search with
// a filter domain, and call named state-transition methods.
package rpc

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	ModelServiceOrder = "service.order"
	ModelEmployee     = "hr.employee"
	ModelPartner      = "res.partner"
)

const (
	MethodAssign          = "action_assign_technician"
	MethodStartService    = "action_start_service"
	MethodRequestApproval = "action_request_approval"
	MethodCustomerAccept  = "action_customer_accept"
	MethodCompleteService = "action_complete_service"
	MethodCancel          = "action_cancel"
)

var (
	ErrUnknownModel        = errors.New("rpc: unknown model")
	ErrUnknownField        = errors.New("rpc: unknown field")
	ErrUnknownMethod       = errors.New("rpc: unknown method")
	ErrUnsupportedOperator = errors.New("rpc: unsupported domain operator")
)

//go:generate go run go.uber.org/mock/mockgen -package rpcmock -destination rpcmock/client.go service-calendar/internal/rpc Client

type Reader interface {
	Read(ctx context.Context, model string, ids []uuid.UUID, fields []string) ([]Record, error)
	SearchRead(ctx context.Context, model string, domain Domain, fields []string, limit int) ([]Record, error)
}

type Caller interface {
	Call(ctx context.Context, model, method string, ids []uuid.UUID) (any, error)
}

type Client interface {
	Reader
	Caller
}

// Error is a failure reported by the backend with a message meant for the
// end user, e.g. a rejected state transition.
type Error struct {
	Model   string
	Method  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Method != "" {
		return "rpc " + e.Model + "." + e.Method + ": " + msg
	}
	return "rpc " + e.Model + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageOf extracts the user-facing backend message from err. Transport
// and internal errors yield an empty string.
func MessageOf(err error) string {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return strings.TrimSpace(rpcErr.Message)
	}
	return ""
}
