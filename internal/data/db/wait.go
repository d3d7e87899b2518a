package db

import (
	"net"
	"time"

	"github.com/gpaccess/backend/internal/pkg/logger"
)

// WaitForEndpoint probes the data-store TCP endpoint with bounded retries
// before the process starts serving traffic. Returns false once the retry
// budget is exhausted; the caller is expected to exit non-zero.
func WaitForEndpoint(host, port string, retries int, interval time.Duration, log *logger.Logger) bool {
	addr := net.JoinHostPort(host, port)
	for attempt := 1; attempt <= retries; attempt++ {
		conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err == nil {
			conn.Close()
			log.Info("Data store endpoint reachable", "addr", addr, "attempt", attempt)
			return true
		}
		log.Warn("Data store endpoint not reachable yet", "addr", addr, "attempt", attempt, "retries", retries, "error", err)
		if attempt < retries {
			time.Sleep(interval)
		}
	}
	return false
}
