package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Certificate wraps the graduation certificate NFT contract.
type Certificate struct {
	contract *bind.BoundContract
	address  common.Address
}

func newCertificate(address common.Address, backend bind.ContractBackend) *Certificate {
	return &Certificate{
		contract: bind.NewBoundContract(address, certificateParsedABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (c *Certificate) Address() common.Address {
	return c.address
}

// HasClaimed reports whether the address has minted its certificate. The
// flag only ever moves false to true.
func (c *Certificate) HasClaimed(ctx context.Context, student common.Address) (bool, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasClaimed", student); err != nil {
		return false, fmt.Errorf("hasClaimed query failed: %w", err)
	}
	return out[0].(bool), nil
}

// Mint claims the sender's graduation certificate.
func (c *Certificate) Mint(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.contract.Transact(opts, "mintCertificate")
}
