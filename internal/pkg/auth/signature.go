package auth

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// ChallengeMessage builds the text the wallet must personal-sign to prove
// control of the address.
func ChallengeMessage(issuer, address, nonce string) string {
	return fmt.Sprintf("%s wants you to sign in with your account:\n%s\n\nNonce: %s", issuer, address, nonce)
}

// VerifyPersonalSignature checks that signature is a valid personal_sign of
// message by address. The 65-byte signature may carry a legacy V of 27/28.
func VerifyPersonalSignature(address common.Address, message string, signature string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrInvalidSignature, "signature is not valid hex")
	}
	if len(sig) != crypto.SignatureLength {
		return apperrors.NewCustomError(apperrors.ErrInvalidSignature, "signature must be 65 bytes")
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrInvalidSignature, "signature recovery failed")
	}

	if crypto.PubkeyToAddress(*pub) != address {
		return apperrors.ErrInvalidSignature
	}
	return nil
}
