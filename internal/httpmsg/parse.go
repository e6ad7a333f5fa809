package httpmsg

import (
	"bufio"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// Default parse limits, applied when the config leaves them unset.
const (
	DefaultMaxHeaderBytes = 8 << 10
	DefaultMaxBodyBytes   = 1 << 20
)

// ParseLimits bounds how much of a single request the codec will buffer.
type ParseLimits struct {
	MaxHeaderBytes int
	MaxBodyBytes   int
}

func (l ParseLimits) withDefaults() ParseLimits {
	if l.MaxHeaderBytes <= 0 {
		l.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return l
}

// ReadRequest parses one HTTP/1.1 request from the reader. It returns io.EOF
// when the connection closed cleanly before any byte arrived, and a
// *MalformedRequestError for anything it cannot frame: a broken request
// line, an unsupported protocol version, a header line without a colon, an
// oversized header block, or body framing inconsistent with Content-Length.
func ReadRequest(br *bufio.Reader, limits ParseLimits) (*Request, error) {
	limits = limits.withDefaults()
	remaining := limits.MaxHeaderBytes

	line, err := readLine(br, &remaining)
	if err != nil {
		return nil, err
	}

	method, path, query, proto, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	header := make(Header, 8)
	for {
		line, err := readLine(br, &remaining)
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		if line == "" {
			break
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, malformed("header line without colon")
		}
		if key == "" || strings.ContainsAny(key, " \t") {
			return nil, malformed("invalid header field name")
		}

		header.Add(key, strings.TrimSpace(value))
	}

	body, err := readBody(br, header, limits.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method: method,
		Path:   path,
		Proto:  proto,
		Header: header,
		Query:  query,
		Body:   body,
	}, nil
}

// readLine reads one CRLF-terminated line in buffer-sized chunks, charging
// each chunk against the header budget before accumulating it, so a line
// that never terminates cannot buffer past the limit. io.EOF is returned
// only when the line start coincides with a clean connection close.
func readLine(br *bufio.Reader, remaining *int) (string, error) {
	var line strings.Builder
	for {
		chunk, err := br.ReadSlice('\n')

		*remaining -= len(chunk)
		if *remaining < 0 {
			return "", malformed("header block exceeds size limit")
		}
		line.Write(chunk)

		switch err {
		case nil:
			s := strings.TrimSuffix(line.String(), "\n")
			return strings.TrimSuffix(s, "\r"), nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if line.Len() > 0 {
				return "", io.ErrUnexpectedEOF
			}
			return "", io.EOF
		default:
			return "", err
		}
	}
}

func parseRequestLine(line string) (method, path string, query url.Values, proto string, err error) {
	method, rest, ok := strings.Cut(line, " ")
	if !ok {
		return "", "", nil, "", malformed("request line has no target")
	}

	target, proto, ok := strings.Cut(rest, " ")
	if !ok {
		return "", "", nil, "", malformed("request line has no protocol version")
	}

	if method == "" || strings.ContainsAny(method, " \t") || method != strings.ToUpper(method) {
		return "", "", nil, "", malformed("invalid method token")
	}

	if proto != "HTTP/1.1" && proto != "HTTP/1.0" {
		return "", "", nil, "", malformed("unsupported protocol version")
	}

	if target == "" || target[0] != '/' {
		return "", "", nil, "", malformed("request target must be an absolute path")
	}

	rawPath, rawQuery, _ := strings.Cut(target, "?")

	// An encoded slash would decode into a path separator and change how
	// the path segments, so it is refused outright.
	if strings.Contains(strings.ToUpper(rawPath), "%2F") {
		return "", "", nil, "", malformed("encoded slash in path")
	}

	path, unescapeErr := url.PathUnescape(rawPath)
	if unescapeErr != nil {
		return "", "", nil, "", malformed("invalid percent-encoding in path")
	}

	query = url.Values{}
	if rawQuery != "" {
		query, unescapeErr = url.ParseQuery(rawQuery)
		if unescapeErr != nil {
			return "", "", nil, "", malformed("invalid query string encoding")
		}
	}

	return method, path, query, proto, nil
}

func readBody(br *bufio.Reader, header Header, maxBodyBytes int) ([]byte, error) {
	if header.Has("Transfer-Encoding") {
		return nil, malformed("transfer encodings are not supported")
	}

	values := header.Values("Content-Length")
	if len(values) == 0 {
		return nil, nil
	}

	for _, v := range values[1:] {
		if v != values[0] {
			return nil, malformed("conflicting Content-Length values")
		}
	}

	for _, r := range values[0] {
		if r < '0' || r > '9' {
			return nil, malformed("Content-Length must be digits only")
		}
	}
	length, err := strconv.Atoi(values[0])
	if err != nil {
		return nil, malformed("invalid Content-Length")
	}

	if length > maxBodyBytes {
		return nil, malformed("declared body exceeds size limit")
	}

	if length == 0 {
		return nil, nil
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, malformed("body shorter than declared Content-Length")
	}

	return body, nil
}
