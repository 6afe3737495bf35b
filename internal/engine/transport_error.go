package engine

import (
	"context"
	"errors"
	"net"
	"strings"

	"weathercheck/internal/weather"
)

// presentTransportError turns a failed request into the detail recorded for
// an ERROR outcome. The API key is already redacted by the weather client;
// without verbose the request URL is dropped too.
func presentTransportError(err error, verbose bool) string {
	if err == nil {
		return "unknown error"
	}
	if verbose {
		return err.Error()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return "request timed out"
	}

	var te *weather.TransportError
	if errors.As(err, &te) {
		msg := strings.TrimSpace(te.Err.Error())
		if msg == "" {
			return "weather API request failed"
		}
		return "weather API request failed: " + msg
	}
	return strings.TrimSpace(err.Error())
}
