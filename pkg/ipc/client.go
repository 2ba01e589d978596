package ipc

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// Client reads compositor events, one "event>>data" line at a time.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ReadLine() (string, error) {
	str, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read from event socket: %w", err)
	}
	return strings.TrimSuffix(str, "\n"), nil
}

func Connect(dir string) (*Client, error) {
	conn, err := connect(dir, Events)
	if err != nil {
		return nil, err
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}
