package gateway

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

// IsNetworkError reports whether err stems from failing to reach the server
// (timeout, refused connection, DNS failure, cancelled context) as opposed to
// the server actively rejecting the request. Network-class failures feed the
// offline queue; application-level ones never do.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// http.Client wraps transport failures in *url.Error; anything that made
	// it here without an API error never produced a response.
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
