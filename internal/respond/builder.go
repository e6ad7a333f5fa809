package respond

import (
	"encoding/json"
	"net/http"

	"github.com/angeloszaimis/go-dispatch/internal/httpmsg"
)

// Build converts a handler result into a response. A *httpmsg.Response is
// passed through (defaulting a zero status to 200); nil becomes 204; []byte
// and string become a 200 with an inferred content type; anything else is
// serialized to JSON with a 200. Serialization failure is returned to the
// caller, who treats it as a handler failure.
func Build(result any) (*httpmsg.Response, error) {
	switch v := result.(type) {
	case nil:
		return httpmsg.NewResponse(http.StatusNoContent), nil

	case *httpmsg.Response:
		if v.StatusCode == 0 {
			v.StatusCode = http.StatusOK
		}
		if v.Header == nil {
			v.Header = make(httpmsg.Header)
		}
		return v, nil

	case []byte:
		return httpmsg.NewResponse(http.StatusOK).SetBody("application/octet-stream", v), nil

	case string:
		return httpmsg.NewResponse(http.StatusOK).SetBody("text/plain; charset=utf-8", []byte(v)), nil

	default:
		return JSON(http.StatusOK, v)
	}
}

// JSON builds a response carrying the JSON serialization of v.
func JSON(status int, v any) (*httpmsg.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return httpmsg.NewResponse(status).SetBody("application/json", body), nil
}

// Text builds a plain-text response.
func Text(status int, text string) *httpmsg.Response {
	return httpmsg.NewResponse(status).SetBody("text/plain; charset=utf-8", []byte(text))
}
