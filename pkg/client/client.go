// Package client talks to the touch-timeout daemon over its unix socket.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// ErrDaemonNotRunning means the daemon socket does not exist.
	ErrDaemonNotRunning = errors.New("daemon not running")
	// ErrPermissionDenied means the socket exists but is not accessible.
	ErrPermissionDenied = errors.New("permission denied")
)

// Client is an HTTP client bound to the daemon's unix socket.
type Client struct {
	socketPath string
	httpClient *http.Client
}

// NewClient creates a client for the daemon socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
					conn, err := net.Dial("unix", socketPath)
					if err != nil {
						// The dial error arrives wrapped in *net.OpError;
						// errors.Is unwraps it, os.IsNotExist would not.
						if errors.Is(err, fs.ErrNotExist) {
							return nil, ErrDaemonNotRunning
						}
						if errors.Is(err, fs.ErrPermission) {
							return nil, ErrPermissionDenied
						}
						return nil, err
					}
					return conn, nil
				},
			},
		},
	}
}

// Send performs a request against the daemon and returns the response body.
func (c *Client) Send(method, path, data string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"unix":   c.socketPath,
	}).Debug("sending request")

	req, err := http.NewRequest(method, "http://unix"+path, strings.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	body := string(b)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("got %d: %s", resp.StatusCode, body)
	}

	return body, nil
}

// Get performs a GET request.
func (c *Client) Get(path string) (string, error) {
	return c.Send(http.MethodGet, path, "")
}

// Post performs a POST request.
func (c *Client) Post(path, data string) (string, error) {
	return c.Send(http.MethodPost, path, data)
}

// Put performs a PUT request.
func (c *Client) Put(path, data string) (string, error) {
	return c.Send(http.MethodPut, path, data)
}

// decodeJSON unmarshals a daemon response into out.
func decodeJSON(body string, out interface{}) error {
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to decode daemon response: %w", err)
	}
	return nil
}
