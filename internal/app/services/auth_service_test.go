package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/services"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/auth"
)

type fakeOwnerReader struct {
	owner common.Address
	err   error
}

func (f *fakeOwnerReader) Owner(ctx context.Context) (common.Address, error) {
	return f.owner, f.err
}

func newAuthService(registrar *fakeOwnerReader) services.AuthService {
	nonces := auth.NewNonceStore(time.Minute)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unireg.gateway",
	})
	return services.NewAuthService(nonces, jwtService, registrar, "unireg.gateway", zerolog.Nop())
}

func TestChallengeAndLogin(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	svc := newAuthService(&fakeOwnerReader{owner: ownerAddr})

	challenge, err := svc.Challenge(context.Background(), address.Hex())
	require.NoError(t, err)
	assert.Equal(t, address.Hex(), challenge.Address)
	assert.Contains(t, challenge.Message, challenge.Nonce)

	sig, err := crypto.Sign(accounts.TextHash([]byte(challenge.Message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address.Hex(),
		Signature: hexutil.Encode(sig),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, address.Hex(), resp.Address)
	assert.Equal(t, string(models.RoleStudent), resp.Role)
}

func TestLoginAssignsOwnerRole(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	svc := newAuthService(&fakeOwnerReader{owner: address})

	challenge, err := svc.Challenge(context.Background(), address.Hex())
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(challenge.Message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address.Hex(),
		Signature: hexutil.Encode(sig),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleOwner), resp.Role)
}

func TestLoginWithoutChallenge(t *testing.T) {
	svc := newAuthService(&fakeOwnerReader{owner: ownerAddr})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Address:   studentAddress,
		Signature: "0x00",
	})
	assert.ErrorIs(t, err, apperrors.ErrNonceNotFound)
}

func TestLoginBurnsNonceOnBadSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	svc := newAuthService(&fakeOwnerReader{owner: ownerAddr})

	_, err = svc.Challenge(context.Background(), address.Hex())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address.Hex(),
		Signature: "0x1234",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidSignature)

	// The failed attempt consumed the nonce; a retry needs a new challenge.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address.Hex(),
		Signature: "0x1234",
	})
	assert.ErrorIs(t, err, apperrors.ErrNonceNotFound)
}

func TestLoginDefaultsToStudentWhenOwnerReadFails(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	svc := newAuthService(&fakeOwnerReader{err: errors.New("connection refused")})

	challenge, err := svc.Challenge(context.Background(), address.Hex())
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(challenge.Message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address.Hex(),
		Signature: hexutil.Encode(sig),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleStudent), resp.Role)
}

func TestChallengeRejectsMalformedAddress(t *testing.T) {
	svc := newAuthService(&fakeOwnerReader{owner: ownerAddr})

	_, err := svc.Challenge(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
