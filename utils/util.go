package utils

import (
	"fmt"
	"net"
	"strconv"
)

// Port returns the numeric port of a listen address such as ":8000" or
// "0.0.0.0:8000".
func Port(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(p)
	if err != nil || v < 0 || v > 65535 {
		return 0, fmt.Errorf("invalid port in %q", addr)
	}
	return v, nil
}

// BrowseURL turns a listen address into the URL a local browser should open.
// Wildcard hosts become localhost.
func BrowseURL(addr string) (string, error) {
	port, err := Port(addr)
	if err != nil {
		return "", err
	}
	host, _, _ := net.SplitHostPort(addr)
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)), nil
}
