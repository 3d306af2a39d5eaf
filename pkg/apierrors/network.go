package apierrors

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Message fragments produced by browsers, node and the Go net stack when the
// request never reached the server.
var networkFingerprints = []string{
	"failed to fetch",
	"fetch failed",
	"network error",
	"networkerror",
	"load failed",
	"network connection was lost",
	"econnrefused",
	"connection refused",
	"enotfound",
	"no such host",
	"etimedout",
	"i/o timeout",
	"connection reset",
}

// IsNetworkFailure reports whether err describes a transport failure.
func IsNetworkFailure(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, fp := range networkFingerprints {
		if strings.Contains(msg, fp) {
			return true
		}
	}
	return false
}

func isAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
