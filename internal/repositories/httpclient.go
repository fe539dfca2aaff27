package repositories

import "net/http"

// HTTPClient is the seam tests use to swap the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
