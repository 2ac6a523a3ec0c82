// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

// NewTransport clones the default transport with a response header timeout
// for SDK clients that accept a RoundTripper.
func NewTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ResponseHeaderTimeout = timeout
	t.MaxIdleConnsPerHost = 10
	return t
}
