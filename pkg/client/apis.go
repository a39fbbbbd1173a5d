package client

import (
	"strconv"

	"github.com/ajmccaus/touch-timeout/pkg/config"
	"github.com/ajmccaus/touch-timeout/pkg/types"
)

// GetStatus fetches the daemon state snapshot.
func (c *Client) GetStatus() (*types.Status, error) {
	body, err := c.Get("/status")
	if err != nil {
		return nil, err
	}
	s := &types.Status{}
	if err := decodeJSON(body, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetConfig fetches the daemon's effective configuration.
func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	body, err := c.Get("/config")
	if err != nil {
		return nil, err
	}
	rc := &config.RawFileConfig{}
	if err := decodeJSON(body, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

// Wake forces the display back to full brightness, as if it had been
// touched.
func (c *Client) Wake() (string, error) {
	return c.Post("/wake", "")
}

// GetBrightness fetches the FULL-state brightness target.
func (c *Client) GetBrightness() (int, error) {
	body, err := c.Get("/brightness")
	if err != nil {
		return 0, err
	}
	var v int
	if err := decodeJSON(body, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// SetBrightness changes the FULL-state brightness target of the running
// daemon. The change is not persisted to the config file.
func (c *Client) SetBrightness(v int) (string, error) {
	return c.Put("/brightness", strconv.Itoa(v))
}

// GetVersion fetches the daemon's version string.
func (c *Client) GetVersion() (string, error) {
	body, err := c.Get("/version")
	if err != nil {
		return "", err
	}
	var v string
	if err := decodeJSON(body, &v); err != nil {
		return "", err
	}
	return v, nil
}
