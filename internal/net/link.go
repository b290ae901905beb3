package net

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// LinkScheme prefixes share links handed to followers.
const LinkScheme = "kolam://"

var ErrBadLink = errors.New("share: invalid link")

func ShareLink(host string, port int) string {
	return LinkScheme + net.JoinHostPort(host, strconv.Itoa(port))
}

// ParseLink accepts kolam://host:port or a bare host:port and returns the
// websocket URL of the hub.
func ParseLink(link string) (string, error) {
	addr := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(link), LinkScheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return "", fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("%w: port in %q", ErrBadLink, link)
	}
	return "ws://" + net.JoinHostPort(host, port) + HubPath, nil
}
