package httpmsg

import (
	"net/url"
	"strings"
)

// Request is the parsed form of one incoming HTTP request. It is constructed
// by the codec, read-only once handed to a handler, and discarded after the
// response is written.
type Request struct {
	Method string
	Path   string
	Proto  string
	Header Header
	Query  url.Values
	Body   []byte
}

// KeepAlive reports whether the client allows reusing the connection for a
// further request: HTTP/1.1 defaults to yes unless "Connection: close",
// HTTP/1.0 defaults to no unless "Connection: keep-alive".
func (r *Request) KeepAlive() bool {
	conn := r.Header.Get("Connection")
	if r.Proto == "HTTP/1.0" {
		return strings.EqualFold(conn, "keep-alive")
	}
	return !strings.EqualFold(conn, "close")
}
