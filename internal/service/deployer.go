package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DeployRequest is the input to the coin deployer service.
type DeployRequest struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	MetadataURI     string `json:"metadata_uri"`
	ChainID         int64  `json:"chain_id"`
	PayoutRecipient string `json:"payout_recipient"`
}

// DeployResult is the deployer service's response for a successful
// deployment.
type DeployResult struct {
	ContractAddress string `json:"contract_address"`
	TxHash          string `json:"tx_hash"`
}

// CoinDeployer deploys an ERC-20 coin contract. Implementations must not
// be called until all local preconditions have passed.
type CoinDeployer interface {
	Deploy(ctx context.Context, req *DeployRequest) (*DeployResult, error)
}

// DeployerConfig holds configuration for the HTTP coin deployer client.
type DeployerConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPDeployer calls an external deployer service that holds the signing
// keys and submits the creation transaction.
type HTTPDeployer struct {
	client  *resty.Client
	baseURL string
}

type deployResponse struct {
	Success bool          `json:"success"`
	Data    *DeployResult `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// NewHTTPDeployer creates a deployer client.
// Parameters:
//   - cfg: deployer configuration; BaseURL is required.
// Returns:
//   - *HTTPDeployer: the client.
func NewHTTPDeployer(cfg *DeployerConfig) *HTTPDeployer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	return &HTTPDeployer{client: client, baseURL: cfg.BaseURL}
}

// Deploy submits the deployment request and waits for the contract
// address.
func (d *HTTPDeployer) Deploy(ctx context.Context, req *DeployRequest) (*DeployResult, error) {
	var resp deployResponse
	httpResp, err := d.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(d.baseURL + "/deploy")
	if err != nil {
		return nil, fmt.Errorf("deployer request failed: %w", err)
	}
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != "" {
			return nil, fmt.Errorf("deployer rejected request: %s", resp.Error)
		}
		return nil, fmt.Errorf("deployer request failed: status %d", httpResp.StatusCode())
	}
	if !resp.Success || resp.Data == nil || resp.Data.ContractAddress == "" {
		return nil, fmt.Errorf("deployer returned no contract address")
	}
	return resp.Data, nil
}
