// Package tftp mirrors the served root over read-only TFTP.
package tftp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	tftp "github.com/pin/tftp/v3"
)

// DefaultAddr is the well-known TFTP port.
const DefaultAddr = ":69"

var errIsDir = errors.New("is a directory")

// cleanName maps a TFTP file name onto the root the same way HTTP paths are:
// surrounding blanks, leading slashes and ".." above the root are dropped.
func cleanName(filename string) string {
	name := strings.TrimSpace(strings.ReplaceAll(filename, "\\", "/"))
	rel := strings.TrimPrefix(path.Clean("/"+name), "/")
	if rel == "" {
		return "."
	}
	return rel
}

func serveFile(fs billy.Filesystem, name string, rf io.ReaderFrom) error {
	fi, err := fs.Stat(name)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s: %w", name, errIsDir)
	}
	f, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if ot, ok := rf.(tftp.OutgoingTransfer); ok {
		ot.SetSize(fi.Size())
	}
	_, err = rf.ReadFrom(f)
	return err
}

func readHandler(fs billy.Filesystem, logger *log.Logger) func(string, io.ReaderFrom) error {
	return func(filename string, rf io.ReaderFrom) error {
		name := cleanName(filename)
		err := serveFile(fs, name, rf)
		if logger != nil {
			if err != nil {
				logger.Printf("RRQ %q -> %q failed: %v", filename, name, err)
			} else {
				logger.Printf("RRQ %q -> %q sent", filename, name)
			}
		}
		return err
	}
}

// StartTFTPServer serves every regular file of fs read-only over TFTP.
// Write requests are refused.
func StartTFTPServer(addr string, fs billy.Filesystem, logger *log.Logger) (*tftp.Server, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}

	// Write handler not used.
	srv := tftp.NewServer(readHandler(fs, logger), nil)
	srv.SetTimeout(5 * time.Second)

	go func() {
		if logger != nil {
			logger.Printf("TFTP server listening on %s, root=%q", conn.LocalAddr(), fs.Root())
		}
		if err := srv.Serve(conn); err != nil {
			if logger != nil {
				logger.Printf("TFTP server error: %v", err)
			}
		}
	}()
	return srv, nil
}
