package utils

import (
	"errors"
	"net"
	"strings"
	"testing"
)

func TestIsAddrInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	_, err = net.Listen("tcp", ln.Addr().String())
	if err == nil {
		t.Fatalf("second listen on %s should fail", ln.Addr())
	}
	if !IsAddrInUse(err) {
		t.Fatalf("IsAddrInUse(%v) = false", err)
	}
	if IsPermission(err) {
		t.Fatalf("IsPermission(%v) = true", err)
	}
	wrapped := DescribeBindError(ln.Addr().String(), err)
	if !strings.Contains(wrapped.Error(), "already in use") || !errors.Is(wrapped, err) {
		t.Fatalf("DescribeBindError got=%v", wrapped)
	}
}

func TestDescribeBindErrorDefault(t *testing.T) {
	base := errors.New("boom")
	err := DescribeBindError(":8000", base)
	if !errors.Is(err, base) || err.Error() != "bind :8000: boom" {
		t.Fatalf("DescribeBindError got=%v", err)
	}
}
