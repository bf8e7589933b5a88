package partner

import (
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response is kept for logs.
const maxErrorBody = 64 << 10

func newHTTPClient(timeout, connectTimeout time.Duration, maxConns int) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.MaxIdleConnsPerHost = max(maxConns, 2)

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil && len(body) == 0 {
		return "unreadable response body"
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response body"
	}
	return msg
}
