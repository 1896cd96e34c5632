package httpx

import (
	"log"
	"net"
	"net/http"
	"strconv"
)

// statusRecorder captures the status code and body size for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// AccessLog logs one common-log style line per request:
//
//	127.0.0.1 - - "GET /index-simples.html HTTP/1.1" 200 12
func AccessLog(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		if rw.status == 0 {
			rw.status = http.StatusOK
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		size := "-"
		if rw.size > 0 {
			size = strconv.FormatInt(rw.size, 10)
		}
		logger.Printf("%s - - %q %d %s", host, r.Method+" "+r.RequestURI+" "+r.Proto, rw.status, size)
	})
}
