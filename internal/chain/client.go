package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/config"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/logger"
)

// Client owns the JSON-RPC connection and the three bound contracts.
type Client struct {
	eth     *ethclient.Client
	chainID *big.Int

	Registrar   *Registrar
	Catalog     *Catalog
	Certificate *Certificate
}

// Dial connects to the configured RPC endpoint and binds the contracts.
func Dial(ctx context.Context, cfg *config.Config) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	eth, err := ethclient.DialContext(dialCtx, cfg.Chain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC endpoint: %w", err)
	}

	chainID, err := eth.ChainID(dialCtx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}
	if cfg.Chain.ChainID != 0 && chainID.Int64() != cfg.Chain.ChainID {
		eth.Close()
		return nil, fmt.Errorf("chain id mismatch: endpoint reports %d, config expects %d", chainID.Int64(), cfg.Chain.ChainID)
	}

	c := &Client{
		eth:     eth,
		chainID: chainID,
	}
	c.Registrar = newRegistrar(cfg.RegistrarAddress(), eth)
	c.Catalog = newCatalog(cfg.CatalogAddress(), eth)
	c.Certificate = newCertificate(cfg.CertificateAddress(), eth)

	logger.Info().
		Str("rpcUrl", cfg.Chain.RPCURL).
		Int64("chainId", chainID.Int64()).
		Str("registrar", cfg.Chain.RegistrarAddress).
		Str("catalog", cfg.Chain.CatalogAddress).
		Str("certificate", cfg.Chain.CertificateAddress).
		Msg("Connected to ledger")

	return c, nil
}

// ChainID returns the connected chain's id.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// WaitMined blocks until the transaction is mined and returns its receipt.
// It honours ctx cancellation but imposes no timeout of its own; a pending
// transaction stays pending until the chain resolves it.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.eth, tx)
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
