package auth_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/auth"
)

func signPersonal(t *testing.T, message string) (string, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	// Wallets emit the legacy 27/28 recovery id.
	sig[crypto.RecoveryIDOffset] += 27

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func TestVerifyPersonalSignature(t *testing.T) {
	message := auth.ChallengeMessage("unireg.gateway", "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "nonce-1")
	address, signature := signPersonal(t, message)

	err := auth.VerifyPersonalSignature(common.HexToAddress(address), message, signature)
	assert.NoError(t, err)
}

func TestVerifyPersonalSignatureWrongSigner(t *testing.T) {
	message := "hello"
	_, signature := signPersonal(t, message)

	other := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	err := auth.VerifyPersonalSignature(common.HexToAddress(other), message, signature)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}

func TestVerifyPersonalSignatureTamperedMessage(t *testing.T) {
	address, signature := signPersonal(t, "original message")

	err := auth.VerifyPersonalSignature(common.HexToAddress(address), "tampered message", signature)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}

func TestVerifyPersonalSignatureMalformed(t *testing.T) {
	address := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	for _, sig := range []string{"not hex", "0x1234", ""} {
		err := auth.VerifyPersonalSignature(common.HexToAddress(address), "message", sig)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSignature, "signature %q", sig)
	}
}

func TestNonceStoreIssueAndTake(t *testing.T) {
	store := auth.NewNonceStore(time.Minute)
	address := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	nonce := store.Issue(address)
	require.NotEmpty(t, nonce)

	taken, err := store.Take(address)
	require.NoError(t, err)
	assert.Equal(t, nonce, taken)

	// A nonce is single use.
	_, err = store.Take(address)
	assert.ErrorIs(t, err, apperrors.ErrNonceNotFound)
}

func TestNonceStoreCaseInsensitiveAddress(t *testing.T) {
	store := auth.NewNonceStore(time.Minute)

	nonce := store.Issue("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	taken, err := store.Take("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
	require.NoError(t, err)
	assert.Equal(t, nonce, taken)
}

func TestNonceStoreReissueReplaces(t *testing.T) {
	store := auth.NewNonceStore(time.Minute)
	address := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	first := store.Issue(address)
	second := store.Issue(address)
	require.NotEqual(t, first, second)

	taken, err := store.Take(address)
	require.NoError(t, err)
	assert.Equal(t, second, taken)
}

func TestNonceStoreExpiry(t *testing.T) {
	store := auth.NewNonceStore(-time.Second)
	address := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	store.Issue(address)
	_, err := store.Take(address)
	assert.ErrorIs(t, err, apperrors.ErrNonceNotFound)
}

func TestJWTRoundTrip(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unireg.gateway",
	})

	token, expiresIn, err := svc.GenerateToken("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "STUDENT")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", claims.Address)
	assert.Equal(t, "STUDENT", claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret-a", AccessTokenExp: time.Hour, TokenIssuer: "unireg.gateway"})
	verifier := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret-b", AccessTokenExp: time.Hour, TokenIssuer: "unireg.gateway"})

	token, _, err := issuer.GenerateToken("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "STUDENT")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "unireg.gateway",
	})

	token, _, err := svc.GenerateToken("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "STUDENT")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := auth.ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = auth.ExtractBearerToken("abc.def.ghi")
	assert.Error(t, err)

	_, err = auth.ExtractBearerToken("")
	assert.Error(t, err)
}
