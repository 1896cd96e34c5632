// Package httpx serves the files under a root directory over HTTP/1.x.
package httpx

import (
	"log"
	"net"
	"net/http"
)

// DefaultAddr listens on port 8000 on every interface.
const DefaultAddr = ":8000"

// StartHTTPServer binds addr and serves handler on it from a goroutine. The
// bind happens before returning, so an address already in use is reported
// to the caller. The listener is returned so the caller can manage
// lifecycle if needed.
func StartHTTPServer(addr string, handler http.Handler, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: handler, ErrorLog: logger}
	go func() {
		if logger != nil {
			logger.Printf("http server listening on %s", ln.Addr())
		}
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Printf("http serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
