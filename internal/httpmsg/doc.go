// Package httpmsg defines the request and response entities exchanged with
// handlers, and the HTTP/1.1 wire codec that produces and consumes them.
// Parsing is strict: anything the codec cannot frame unambiguously is
// reported as a malformed request rather than guessed at.
package httpmsg
