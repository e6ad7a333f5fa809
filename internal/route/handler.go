package route

import (
	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
)

// Params holds path placeholder captures by name, e.g. pattern /items/{id}
// matched against /items/42 yields Params{"id": "42"}.
type Params map[string]string

// Handler is the unit of logic bound to a route. It receives the parsed
// request and the captured path parameters, and returns either a result for
// the response builder or an error. A returned *httpmsg.Response is used
// as-is; any other non-nil result is serialized with a 200 status.
type Handler interface {
	Handle(req *httpmsg.Request, params Params) (any, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(req *httpmsg.Request, params Params) (any, error)

func (f HandlerFunc) Handle(req *httpmsg.Request, params Params) (any, error) {
	return f(req, params)
}
