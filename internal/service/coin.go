package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/repository"
	"github.com/timmy/memeforge/internal/storage"
)

// MetadataPinner pins coin metadata and meme images to IPFS.
// *ipfs.Client satisfies this.
type MetadataPinner interface {
	PinJSON(ctx context.Context, name string, content interface{}) (string, error)
	PinFile(ctx context.Context, name string, data []byte) (string, error)
	IPFSURL(hash string) string
	GatewayURL(hash string) string
}

// CreateCoinRequest is the input for minting a coin from a meme.
type CreateCoinRequest struct {
	MemeID          string `json:"meme_id"`
	Name            string `json:"name,omitempty"`
	Symbol          string `json:"symbol,omitempty"`
	ChainID         int64  `json:"chain_id,omitempty"`
	PayoutRecipient string `json:"payout_recipient"`
}

// CoinService orchestrates coin creation: precondition checks, metadata
// assembly, IPFS pinning, image archival, contract deployment, and the
// coin-created latch. Preconditions are checked before any network call so
// an ineligible meme never touches IPFS or the deployer.
type CoinService struct {
	memes    *MemeService
	pinner   MetadataPinner
	deployer CoinDeployer
	archive  storage.ObjectStorage
	coinRepo *repository.CoinRepository
	prefs    *PreferencesService
	fetcher  *resty.Client
	logger   *logger.Logger
}

// NewCoinService creates the coin service.
// Parameters:
//   - memes: meme service owning the collection.
//   - pinner: IPFS pinner.
//   - deployer: coin deployment backend.
//   - archive: object store for archiving minted meme images; nil disables
//     archival.
//   - coinRepo: coin persistence; nil disables it.
//   - prefs: preferences service supplying the default chain.
//   - log: logger.
// Returns:
//   - *CoinService: the service.
func NewCoinService(
	memes *MemeService,
	pinner MetadataPinner,
	deployer CoinDeployer,
	archive storage.ObjectStorage,
	coinRepo *repository.CoinRepository,
	prefs *PreferencesService,
	log *logger.Logger,
) *CoinService {
	fetcher := resty.New()
	fetcher.SetTimeout(30 * time.Second)

	return &CoinService{
		memes:    memes,
		pinner:   pinner,
		deployer: deployer,
		archive:  archive,
		coinRepo: coinRepo,
		prefs:    prefs,
		fetcher:  fetcher,
		logger:   log,
	}
}

// log returns the logger from context, or the service logger.
func (s *CoinService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// CreateCoin mints an ERC-20 coin from an eligible meme.
// Parameters:
//   - ctx: request context.
//   - req: creation request; empty Name/Symbol are derived from the meme,
//     a zero ChainID uses the preferences default.
// Returns:
//   - *domain.MemeCoin: the persisted coin record.
//   - error: domain.ErrMemeNotFound, domain.ErrNotEligible,
//     domain.ErrCoinAlreadyCreated, domain.ErrUnsupportedChain, or a
//     deployment failure.
func (s *CoinService) CreateCoin(ctx context.Context, req *CreateCoinRequest) (*domain.MemeCoin, error) {
	meme, ok := s.memes.store.Get(req.MemeID)
	if !ok {
		return nil, domain.ErrMemeNotFound
	}
	if meme.CoinCreated {
		return nil, domain.ErrCoinAlreadyCreated
	}
	if !meme.Eligible {
		return nil, domain.ErrNotEligible
	}
	if strings.TrimSpace(req.PayoutRecipient) == "" {
		return nil, fmt.Errorf("payout recipient is required")
	}

	chainID := req.ChainID
	if chainID == 0 {
		chainID = s.prefs.Get(ctx).DefaultChainID
	}
	if !domain.IsSupportedChain(chainID) {
		return nil, domain.ErrUnsupportedChain
	}

	name := req.Name
	if name == "" {
		name = domain.DeriveCoinName(meme.TemplateName, meme.TopText, meme.BottomText)
	}
	symbol := req.Symbol
	if symbol == "" {
		symbol = domain.DeriveCoinSymbol(meme.TemplateName, meme.TopText, meme.BottomText)
	}

	ctx = logger.SetMemeID(ctx, meme.ID)

	imageURI := s.pinImage(ctx, &meme)
	metadata := buildCoinMetadata(&meme, name, symbol, imageURI)

	metadataHash, err := s.pinner.PinJSON(ctx, "meme-coin-metadata-"+meme.ID, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to pin coin metadata: %w", err)
	}
	metadataURI := s.pinner.IPFSURL(metadataHash)

	result, err := s.deployer.Deploy(ctx, &DeployRequest{
		Name:            name,
		Symbol:          symbol,
		MetadataURI:     metadataURI,
		ChainID:         chainID,
		PayoutRecipient: req.PayoutRecipient,
	})
	if err != nil {
		return nil, fmt.Errorf("coin deployment failed: %w", err)
	}

	latched, ok := s.memes.store.Mutate(meme.ID, func(m *domain.Meme) {
		m.MarkCoinCreated(result.ContractAddress)
		m.UpdatedAt = time.Now()
	})
	if ok {
		s.memes.persistMemeUpdate(ctx, &latched)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		s.log(ctx).WithError(err).Warn("Failed to serialize coin metadata for storage")
	}

	coin := &domain.MemeCoin{
		ID:              "coin-" + uuid.NewString(),
		MemeID:          meme.ID,
		Name:            name,
		Symbol:          symbol,
		ChainID:         chainID,
		ContractAddress: result.ContractAddress,
		TxHash:          result.TxHash,
		ViewerURL:       domain.CoinViewerURL(result.ContractAddress, chainID),
		IPFSHash:        metadataHash,
		MetadataJSON:    string(metadataJSON),
		Creator:         req.PayoutRecipient,
		CreatedAt:       time.Now(),
	}
	if s.coinRepo != nil {
		if err := s.coinRepo.Create(ctx, coin); err != nil {
			s.log(ctx).WithError(err).WithField(logger.FieldCoinID, coin.ID).
				Error("Failed to persist coin record")
		}
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldCoinID: coin.ID,
		"contract_address": coin.ContractAddress,
		"chain_id":         chainID,
	}).Info("Coin created")

	return coin, nil
}

// pinImage fetches the meme's image, pins it to IPFS, and archives the
// bytes to the object store. Both steps are best-effort: a pin failure
// falls back to the original image URL in the metadata.
func (s *CoinService) pinImage(ctx context.Context, meme *domain.Meme) string {
	resp, err := s.fetcher.R().SetContext(ctx).Get(meme.ImageURL)
	if err != nil || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		s.log(ctx).WithError(err).Warn("Failed to fetch meme image, keeping original URL in metadata")
		return meme.ImageURL
	}
	data := resp.Body()

	if s.archive != nil {
		key := "coins/" + meme.ID + "/image"
		contentType := resp.Header().Get("Content-Type")
		if err := s.archive.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
			s.log(ctx).WithError(err).Warn("Failed to archive meme image")
		}
	}

	hash, err := s.pinner.PinFile(ctx, "meme-image-"+meme.ID, data)
	if err != nil {
		s.log(ctx).WithError(err).Warn("Failed to pin meme image, keeping original URL in metadata")
		return meme.ImageURL
	}
	return s.pinner.IPFSURL(hash)
}

// ListCoins returns all minted coins, newest first.
func (s *CoinService) ListCoins(ctx context.Context) ([]domain.MemeCoin, error) {
	if s.coinRepo == nil {
		return []domain.MemeCoin{}, nil
	}
	return s.coinRepo.ListAll(ctx)
}

// GetCoin returns a coin by its ID.
func (s *CoinService) GetCoin(ctx context.Context, id string) (*domain.MemeCoin, error) {
	if s.coinRepo == nil {
		return nil, domain.ErrMemeNotFound
	}
	return s.coinRepo.GetByID(ctx, id)
}

// GetCoinByMemeID returns the coin minted from a meme, if any.
func (s *CoinService) GetCoinByMemeID(ctx context.Context, memeID string) (*domain.MemeCoin, error) {
	if s.coinRepo == nil {
		return nil, domain.ErrMemeNotFound
	}
	return s.coinRepo.GetByMemeID(ctx, memeID)
}

// buildCoinMetadata assembles the metadata document pinned for a coin.
func buildCoinMetadata(meme *domain.Meme, name, symbol, imageURI string) *domain.CoinMetadata {
	snap := domain.SnapshotPopularity(meme)
	return &domain.CoinMetadata{
		Name:        name,
		Symbol:      symbol,
		Description: fmt.Sprintf("A meme coin minted from the %q meme. Original prompt: %s", meme.TemplateName, meme.Prompt),
		Image:       imageURI,
		Attributes: []domain.CoinAttribute{
			{TraitType: "Template", Value: meme.TemplateName},
			{TraitType: "Category", Value: meme.Category},
			{TraitType: "Engagement Score", Value: snap.Score},
			{TraitType: "Views", Value: snap.Views},
			{TraitType: "Likes", Value: snap.Likes},
			{TraitType: "Shares", Value: snap.Shares},
		},
		Meme: domain.CoinMemeRef{
			TemplateID:     meme.TemplateID,
			TemplateName:   meme.TemplateName,
			TopText:        meme.TopText,
			BottomText:     meme.BottomText,
			OriginalPrompt: meme.Prompt,
			Category:       meme.Category,
			Language:       meme.Language,
		},
		Popularity: snap,
	}
}
