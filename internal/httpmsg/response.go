package httpmsg

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Response is one outgoing HTTP response: status, headers, body bytes.
// Handlers may build one directly; otherwise the response builder does.
type Response struct {
	StatusCode int
	Header     Header
	Body       []byte
}

// NewResponse creates an empty response with the given status code.
func NewResponse(status int) *Response {
	return &Response{
		StatusCode: status,
		Header:     make(Header),
	}
}

// SetBody replaces the body and declares its content type.
func (r *Response) SetBody(contentType string, body []byte) *Response {
	r.Header.Set("Content-Type", contentType)
	r.Body = body
	return r
}

// WriteTo serializes the response as HTTP/1.1: status line, headers, blank
// line, body. A Content-Length consistent with the body is always emitted
// unless the status forbids a body.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	status := r.StatusCode
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", status, statusText(status))

	for key, values := range r.Header {
		if key == "Content-Length" {
			continue
		}
		for _, value := range values {
			buf.WriteString(key)
			buf.WriteString(": ")
			buf.WriteString(value)
			buf.WriteString("\r\n")
		}
	}

	if bodyAllowed(status) {
		buf.WriteString("Content-Length: ")
		buf.WriteString(strconv.Itoa(len(r.Body)))
		buf.WriteString("\r\n\r\n")
		buf.Write(r.Body)
	} else {
		buf.WriteString("\r\n")
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// bodyAllowed reports whether the status code permits a message body.
func bodyAllowed(status int) bool {
	if status >= 100 && status < 200 {
		return false
	}
	return status != http.StatusNoContent && status != http.StatusNotModified
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Status"
}
