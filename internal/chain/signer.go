package chain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// Signer produces transaction options backed by an encrypted keystore
// directory. It stands in for the browser wallet of the original workflow:
// a wrong or withheld passphrase is the gateway's equivalent of the user
// rejecting the signing prompt.
type Signer struct {
	ks      *keystore.KeyStore
	chainID *big.Int
}

// NewSigner opens (or creates) the keystore directory.
func NewSigner(keyDir string, chainID *big.Int) *Signer {
	return &Signer{
		ks:      keystore.NewKeyStore(keyDir, keystore.StandardScryptN, keystore.StandardScryptP),
		chainID: chainID,
	}
}

// Holds reports whether the keystore has a key for the address.
func (s *Signer) Holds(address common.Address) bool {
	return s.ks.HasAddress(address)
}

// TransactOpts returns signing options for the address. The passphrase is
// checked lazily at signing time; decryption failures surface as
// apperrors.ErrSigningDeclined so the dispatcher classifies them as a
// wallet-side rejection rather than a ledger fault.
func (s *Signer) TransactOpts(ctx context.Context, address common.Address, passphrase string) (*bind.TransactOpts, error) {
	account, err := s.ks.Find(accounts.Account{Address: address})
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrSigningDeclined, "no key held for "+address.Hex())
	}

	return &bind.TransactOpts{
		From:    address,
		Context: ctx,
		Signer: func(signer common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if signer != address {
				return nil, bind.ErrNotAuthorized
			}
			signed, err := s.ks.SignTxWithPassphrase(account, passphrase, tx, s.chainID)
			if err != nil {
				if errors.Is(err, keystore.ErrDecrypt) {
					return nil, apperrors.NewCustomError(apperrors.ErrSigningDeclined, "signing rejected: wrong passphrase")
				}
				return nil, err
			}
			return signed, nil
		},
	}, nil
}
