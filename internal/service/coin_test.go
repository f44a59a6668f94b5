package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
)

// countingPinner counts pin calls so tests can assert that precondition
// failures never reach IPFS.
type countingPinner struct {
	jsonCalls int
	fileCalls int
}

func (p *countingPinner) PinJSON(ctx context.Context, name string, content interface{}) (string, error) {
	p.jsonCalls++
	return "QmMetadataHash", nil
}

func (p *countingPinner) PinFile(ctx context.Context, name string, data []byte) (string, error) {
	p.fileCalls++
	return "QmImageHash", nil
}

func (p *countingPinner) IPFSURL(hash string) string {
	return "ipfs://" + hash
}

func (p *countingPinner) GatewayURL(hash string) string {
	return "https://gateway.pinata.cloud/ipfs/" + hash
}

// countingDeployer counts deploy calls and records the last request.
type countingDeployer struct {
	calls   int
	lastReq *DeployRequest
	err     error
}

func (d *countingDeployer) Deploy(ctx context.Context, req *DeployRequest) (*DeployResult, error) {
	d.calls++
	d.lastReq = req
	if d.err != nil {
		return nil, d.err
	}
	return &DeployResult{ContractAddress: "0xdeadbeef", TxHash: "0xtx"}, nil
}

func newTestCoinService(memes *MemeService) (*CoinService, *countingPinner, *countingDeployer) {
	pinner := &countingPinner{}
	deployer := &countingDeployer{}
	prefs := NewPreferencesService(nil, logger.NewDefault())
	coins := NewCoinService(memes, pinner, deployer, nil, nil, prefs, logger.NewDefault())
	return coins, pinner, deployer
}

// Minting an ineligible or unknown meme must fail before any pin or
// deploy call happens.
func TestCoinService_RejectsBeforeExternalCalls(t *testing.T) {
	memes, engagement := newTestStack(defaultTestTemplates(), 1)
	ctx := context.Background()

	meme, err := memes.Generate(ctx, &GenerateMemeRequest{Prompt: "not popular enough"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coins, pinner, deployer := newTestCoinService(memes)

	tests := []struct {
		name        string
		req         *CreateCoinRequest
		expectedErr error
	}{
		{
			name:        "unknown meme",
			req:         &CreateCoinRequest{MemeID: "meme-missing", PayoutRecipient: "0xabc"},
			expectedErr: domain.ErrMemeNotFound,
		},
		{
			name:        "ineligible meme",
			req:         &CreateCoinRequest{MemeID: meme.ID, PayoutRecipient: "0xabc"},
			expectedErr: domain.ErrNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := coins.CreateCoin(ctx, tt.req); err != tt.expectedErr {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}

	// Unsupported chain and missing payout also reject up front.
	pushToEligible(t, engagement, meme.ID)
	if _, err := coins.CreateCoin(ctx, &CreateCoinRequest{MemeID: meme.ID, PayoutRecipient: "0xabc", ChainID: 1}); err != domain.ErrUnsupportedChain {
		t.Errorf("expected ErrUnsupportedChain, got %v", err)
	}
	if _, err := coins.CreateCoin(ctx, &CreateCoinRequest{MemeID: meme.ID, PayoutRecipient: "  "}); err == nil {
		t.Error("expected an error for a missing payout recipient")
	}

	if pinner.jsonCalls != 0 || pinner.fileCalls != 0 {
		t.Errorf("expected zero pin calls, got json=%d file=%d", pinner.jsonCalls, pinner.fileCalls)
	}
	if deployer.calls != 0 {
		t.Errorf("expected zero deploy calls, got %d", deployer.calls)
	}
}

func TestCoinService_CreateCoin(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer imageServer.Close()

	templates := defaultTestTemplates()
	for i := range templates {
		templates[i].ImageURL = imageServer.URL + "/" + templates[i].ID + ".jpg"
	}

	memes, engagement := newTestStack(templates, 1)
	ctx := context.Background()

	meme, err := memes.Generate(ctx, &GenerateMemeRequest{Prompt: "my success story"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pushToEligible(t, engagement, meme.ID)

	coins, pinner, deployer := newTestCoinService(memes)

	coin, err := coins.CreateCoin(ctx, &CreateCoinRequest{
		MemeID:          meme.ID,
		PayoutRecipient: "0xpayout",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pinner.fileCalls != 1 || pinner.jsonCalls != 1 {
		t.Errorf("expected one image pin and one metadata pin, got file=%d json=%d",
			pinner.fileCalls, pinner.jsonCalls)
	}
	if deployer.calls != 1 {
		t.Fatalf("expected one deploy call, got %d", deployer.calls)
	}
	if deployer.lastReq.MetadataURI != "ipfs://QmMetadataHash" {
		t.Errorf("unexpected metadata URI: %q", deployer.lastReq.MetadataURI)
	}
	if deployer.lastReq.ChainID != domain.ChainBaseMainnet {
		t.Errorf("expected the preferences default chain, got %d", deployer.lastReq.ChainID)
	}

	if coin.ContractAddress != "0xdeadbeef" {
		t.Errorf("unexpected contract address: %q", coin.ContractAddress)
	}
	if coin.ViewerURL != "https://zora.co/coin/base:0xdeadbeef" {
		t.Errorf("unexpected viewer URL: %q", coin.ViewerURL)
	}
	if coin.Name == "" || coin.Symbol == "" {
		t.Errorf("expected derived name and symbol, got %q / %q", coin.Name, coin.Symbol)
	}
	if !strings.Contains(coin.MetadataJSON, "ipfs://QmImageHash") {
		t.Error("expected the pinned image URI in the stored metadata")
	}

	latched, err := memes.Get(ctx, meme.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !latched.CoinCreated || latched.CoinAddress != "0xdeadbeef" {
		t.Errorf("expected the coin-created latch, got created=%v addr=%q",
			latched.CoinCreated, latched.CoinAddress)
	}

	// A second mint attempt hits the latch, with no further external calls.
	if _, err := coins.CreateCoin(ctx, &CreateCoinRequest{MemeID: meme.ID, PayoutRecipient: "0xpayout"}); err != domain.ErrCoinAlreadyCreated {
		t.Errorf("expected ErrCoinAlreadyCreated, got %v", err)
	}
	if deployer.calls != 1 {
		t.Errorf("expected no additional deploy calls, got %d", deployer.calls)
	}
}

// A deploy failure leaves the meme unlatched so the mint can be retried.
func TestCoinService_DeployFailureLeavesStateUntouched(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer imageServer.Close()

	templates := defaultTestTemplates()
	for i := range templates {
		templates[i].ImageURL = imageServer.URL + "/" + templates[i].ID + ".jpg"
	}

	memes, engagement := newTestStack(templates, 1)
	ctx := context.Background()

	meme, err := memes.Generate(ctx, &GenerateMemeRequest{Prompt: "doomed mint"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pushToEligible(t, engagement, meme.ID)

	coins, _, deployer := newTestCoinService(memes)
	deployer.err = context.DeadlineExceeded

	if _, err := coins.CreateCoin(ctx, &CreateCoinRequest{MemeID: meme.ID, PayoutRecipient: "0xpayout"}); err == nil {
		t.Fatal("expected a deployment error")
	}

	after, err := memes.Get(ctx, meme.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.CoinCreated || after.CoinAddress != "" {
		t.Errorf("expected no latch after a failed deploy, got created=%v addr=%q",
			after.CoinCreated, after.CoinAddress)
	}
}
