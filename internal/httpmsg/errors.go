package httpmsg

// MalformedRequestError reports a raw request the codec could not parse:
// a broken request line, header block, or body framing. The reason is meant
// for operator logs, not for the client.
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return "malformed request: " + e.Reason
}

func malformed(reason string) error {
	return &MalformedRequestError{Reason: reason}
}
