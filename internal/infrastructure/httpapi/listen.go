package httpapi

import (
	"fmt"
	"net"

	"uigen-bridge/internal/application/port/output"
)

// Listen binds the preferred port, walking forward through the next
// ports when it is taken. Returns the listener and the port actually
// bound so the operator can be told where the server lives.
func Listen(preferred, maxAttempts int, logger output.LoggerPort) (net.Listener, int, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for port := preferred; port < preferred+maxAttempts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			if port != preferred {
				logger.Warn("Preferred port occupied, bound fallback", "preferred", preferred, "port", port)
			}
			return ln, port, nil
		}
		lastErr = err
		logger.Debug("Port unavailable", "port", port, "error", err)
	}
	return nil, 0, fmt.Errorf("no free port in range %d-%d: %w", preferred, preferred+maxAttempts-1, lastErr)
}
