package ipc

import (
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"net"
	"os"
	"path/filepath"
)

var ErrNotRunning = errors.New("compositor might not be running")

type socketType int

const (
	Request socketType = iota
	Events
)

// SocketDir returns the directory holding the compositor's sockets for the
// current Wayland display.
func SocketDir() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		return "", fmt.Errorf("WAYLAND_DISPLAY is not set, %w", ErrNotRunning)
	}

	return filepath.Join(xdg.RuntimeDir, "tagcycle", display), nil
}

func socketPath(dir string, sock socketType) (string, error) {
	switch sock {
	case Request:
		return filepath.Join(dir, ".socket.sock"), nil
	case Events:
		return filepath.Join(dir, ".socket2.sock"), nil
	}

	return "", fmt.Errorf("unknown socket type: %d", sock)
}

func connect(dir string, sock socketType) (*net.UnixConn, error) {
	path, err := socketPath(dir, sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}
