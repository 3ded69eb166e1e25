package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Catalog wraps the faculty/major catalog contract (read-only surface).
type Catalog struct {
	contract *bind.BoundContract
	address  common.Address
}

func newCatalog(address common.Address, backend bind.ContractBackend) *Catalog {
	return &Catalog{
		contract: bind.NewBoundContract(address, catalogParsedABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (c *Catalog) Address() common.Address {
	return c.address
}

// UniversityName returns the configured university display name.
func (c *Catalog) UniversityName(ctx context.Context) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "universityName"); err != nil {
		return "", fmt.Errorf("universityName query failed: %w", err)
	}
	return out[0].(string), nil
}

// Faculties returns the ordered faculty list.
func (c *Catalog) Faculties(ctx context.Context) ([]string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "listFaculties"); err != nil {
		return nil, fmt.Errorf("listFaculties query failed: %w", err)
	}
	return out[0].([]string), nil
}

// Majors returns the ordered major list for a faculty.
func (c *Catalog) Majors(ctx context.Context, faculty string) ([]string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "listMajors", faculty); err != nil {
		return nil, fmt.Errorf("listMajors query failed: %w", err)
	}
	return out[0].([]string), nil
}

// MajorCost returns the enrollment fee for a (faculty, major) pair in the
// smallest currency unit.
func (c *Catalog) MajorCost(ctx context.Context, faculty, major string) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getMajorCost", faculty, major); err != nil {
		return nil, fmt.Errorf("getMajorCost query failed: %w", err)
	}
	return out[0].(*big.Int), nil
}
