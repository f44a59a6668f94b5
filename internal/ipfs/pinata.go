// Package ipfs pins coin metadata and meme images to IPFS through Pinata.
package ipfs

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	pinFileEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	pinJSONEndpoint = "https://api.pinata.cloud/pinning/pinJSONToIPFS"

	// DefaultGateway is the public Pinata gateway used to build fetchable
	// URLs for pinned content.
	DefaultGateway = "https://gateway.pinata.cloud/ipfs/"
)

// Config holds Pinata client configuration. JWT takes precedence over the
// API key pair. With no credentials at all the client runs in mock mode
// and fabricates hashes, which keeps local development working without an
// account.
type Config struct {
	JWT       string
	APIKey    string
	SecretKey string
	Gateway   string
	Timeout   time.Duration
}

// Client pins content to IPFS via Pinata's pinning API.
type Client struct {
	client  *resty.Client
	gateway string
	mock    bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// pinResponse is Pinata's response for both pinning endpoints.
type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

type pinataMetadata struct {
	Name      string            `json:"name"`
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

type pinataOptions struct {
	CidVersion int `json:"cidVersion"`
}

type pinJSONRequest struct {
	PinataContent  interface{}    `json:"pinataContent"`
	PinataMetadata pinataMetadata `json:"pinataMetadata"`
	PinataOptions  pinataOptions  `json:"pinataOptions"`
}

// NewClient creates a Pinata client.
// Parameters:
//   - cfg: client configuration; nil or credential-less yields mock mode.
// Returns:
//   - *Client: the client.
func NewClient(cfg *Config) *Client {
	gateway := DefaultGateway
	if cfg != nil && cfg.Gateway != "" {
		gateway = cfg.Gateway
	}

	if cfg == nil || (cfg.JWT == "" && cfg.APIKey == "") {
		return &Client{
			gateway: gateway,
			mock:    true,
			rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)
	if cfg.JWT != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.JWT)
	} else {
		client.SetHeader("pinata_api_key", cfg.APIKey)
		client.SetHeader("pinata_secret_api_key", cfg.SecretKey)
	}

	return &Client{client: client, gateway: gateway}
}

// IsMock reports whether the client fabricates hashes instead of pinning.
func (c *Client) IsMock() bool {
	return c.mock
}

// PinJSON pins a JSON document and returns its IPFS hash.
// Parameters:
//   - ctx: request context.
//   - name: pin display name in Pinata.
//   - content: document to pin; must be JSON-serializable.
// Returns:
//   - string: IPFS hash of the pinned document.
//   - error: non-nil if pinning fails.
func (c *Client) PinJSON(ctx context.Context, name string, content interface{}) (string, error) {
	if c.mock {
		return c.mockHash(), nil
	}

	req := pinJSONRequest{
		PinataContent: content,
		PinataMetadata: pinataMetadata{
			Name: name,
			KeyValues: map[string]string{
				"type":      "meme-coin-metadata",
				"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
			},
		},
		PinataOptions: pinataOptions{CidVersion: 0},
	}

	var resp pinResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&resp).
		Post(pinJSONEndpoint)
	if err != nil {
		return "", fmt.Errorf("pinata pin JSON failed: %w", err)
	}
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("pinata pin JSON failed: status %d: %s", httpResp.StatusCode(), httpResp.String())
	}
	if resp.IpfsHash == "" {
		return "", fmt.Errorf("pinata pin JSON returned empty hash")
	}
	return resp.IpfsHash, nil
}

// PinFile pins raw bytes as a file and returns the IPFS hash.
// Parameters:
//   - ctx: request context.
//   - name: pin display name and file name.
//   - data: file content.
// Returns:
//   - string: IPFS hash of the pinned file.
//   - error: non-nil if pinning fails.
func (c *Client) PinFile(ctx context.Context, name string, data []byte) (string, error) {
	if c.mock {
		return c.mockHash(), nil
	}

	metadata, err := json.Marshal(pinataMetadata{
		Name: name,
		KeyValues: map[string]string{
			"type":      "meme-image",
			"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
		},
	})
	if err != nil {
		return "", fmt.Errorf("pinata metadata marshal failed: %w", err)
	}
	options, err := json.Marshal(pinataOptions{CidVersion: 0})
	if err != nil {
		return "", fmt.Errorf("pinata options marshal failed: %w", err)
	}

	var resp pinResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"pinataMetadata": string(metadata),
			"pinataOptions":  string(options),
		}).
		SetResult(&resp).
		Post(pinFileEndpoint)
	if err != nil {
		return "", fmt.Errorf("pinata pin file failed: %w", err)
	}
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", fmt.Errorf("pinata pin file failed: status %d: %s", httpResp.StatusCode(), httpResp.String())
	}
	if resp.IpfsHash == "" {
		return "", fmt.Errorf("pinata pin file returned empty hash")
	}
	return resp.IpfsHash, nil
}

// IPFSURL returns the ipfs:// URI for a hash.
func (c *Client) IPFSURL(hash string) string {
	return "ipfs://" + hash
}

// GatewayURL returns the HTTP gateway URL for a hash.
func (c *Client) GatewayURL(hash string) string {
	return c.gateway + hash
}

// mockHash fabricates a plausible CIDv0-looking hash for mock mode.
func (c *Client) mockHash() string {
	buf := make([]byte, 22)
	c.rngMu.Lock()
	c.rng.Read(buf)
	c.rngMu.Unlock()
	return "Qm" + hex.EncodeToString(buf)
}
