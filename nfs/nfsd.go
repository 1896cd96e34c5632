// Package nfs exports the served root as a read-only NFSv3 share.
package nfs

import (
	"log"
	"net"

	"github.com/go-git/go-billy/v5"
	gonfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"
)

// DefaultAddr is the standard NFS port.
const DefaultAddr = ":2049"

// handleCacheSize bounds the number of file handles kept for clients.
const handleCacheSize = 1024

// NewHandler wraps fs in an AUTH_NULL handler with cached file handles.
// Writes fail when fs is read-only, see rootfs.ReadOnly.
func NewHandler(fs billy.Filesystem) gonfs.Handler {
	return nfshelper.NewCachingHandler(nfshelper.NewNullAuthHandler(fs), handleCacheSize)
}

// StartNFSD runs an NFSv3 TCP server exporting fs. The MOUNT protocol is
// served on the same port, so clients mount with
// "-o port=N,mountport=N,nfsvers=3,tcp".
func StartNFSD(addr string, fs billy.Filesystem, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := NewHandler(fs)
	go func() {
		if logger != nil {
			logger.Printf("nfsd v3 listening on %s root=%q", ln.Addr(), fs.Root())
		}
		if err := gonfs.Serve(ln, handler); err != nil {
			if logger != nil {
				logger.Printf("nfsd serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
