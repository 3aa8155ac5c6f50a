package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.ipify.org?format=json"

// Client fetches the caller's public IP from an external lookup service.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// PublicIP returns the public IP as reported by the lookup service.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup returned status %d", resp.StatusCode)
	}
	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.IP == "" {
		return "", fmt.Errorf("ip lookup returned empty ip")
	}
	return body.IP, nil
}
