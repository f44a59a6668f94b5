package ipfs

import (
	"context"
	"strings"
	"testing"
)

func TestClient_MockMode(t *testing.T) {
	client := NewClient(&Config{})
	if !client.IsMock() {
		t.Fatal("expected mock mode without credentials")
	}

	hash, err := client.PinJSON(context.Background(), "test-metadata", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "Qm") {
		t.Errorf("expected a Qm-prefixed hash, got %q", hash)
	}

	fileHash, err := client.PinFile(context.Background(), "test-image", []byte("bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(fileHash, "Qm") {
		t.Errorf("expected a Qm-prefixed hash, got %q", fileHash)
	}
	if fileHash == hash {
		t.Error("expected distinct mock hashes per pin")
	}
}

func TestClient_RealModeWithCredentials(t *testing.T) {
	jwtClient := NewClient(&Config{JWT: "token"})
	if jwtClient.IsMock() {
		t.Error("expected real mode with a JWT")
	}

	keyClient := NewClient(&Config{APIKey: "key", SecretKey: "secret"})
	if keyClient.IsMock() {
		t.Error("expected real mode with an API key pair")
	}
}

func TestClient_URLs(t *testing.T) {
	client := NewClient(&Config{})

	if got := client.IPFSURL("QmHash"); got != "ipfs://QmHash" {
		t.Errorf("unexpected IPFS URL: %q", got)
	}
	if got := client.GatewayURL("QmHash"); got != "https://gateway.pinata.cloud/ipfs/QmHash" {
		t.Errorf("unexpected gateway URL: %q", got)
	}
}

func TestClient_CustomGateway(t *testing.T) {
	client := NewClient(&Config{Gateway: "https://my.gateway/ipfs/"})
	if got := client.GatewayURL("QmHash"); got != "https://my.gateway/ipfs/QmHash" {
		t.Errorf("unexpected gateway URL: %q", got)
	}
}
