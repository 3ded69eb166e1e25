package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/workflow"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/auth"
)

// OwnerReader resolves the registrar owner address.
type OwnerReader interface {
	Owner(ctx context.Context) (common.Address, error)
}

// AuthService issues wallet-proven sessions. The wallet layer supplies
// identity only; no passwords and no user records exist gateway-side.
type AuthService interface {
	Challenge(ctx context.Context, address string) (*dto.NonceResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authServiceImpl struct {
	nonces    *auth.NonceStore
	jwt       *auth.JWTService
	registrar OwnerReader
	issuer    string
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(nonces *auth.NonceStore, jwt *auth.JWTService, registrar OwnerReader, issuer string, lgr zerolog.Logger) AuthService {
	return &authServiceImpl{
		nonces:    nonces,
		jwt:       jwt,
		registrar: registrar,
		issuer:    issuer,
		logger:    lgr,
	}
}

// Challenge issues a one-time nonce and the message to personal-sign.
func (s *authServiceImpl) Challenge(ctx context.Context, address string) (*dto.NonceResponse, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.NewValidationError("address is not a valid hex address")
	}
	checksummed := common.HexToAddress(address).Hex()

	nonce := s.nonces.Issue(checksummed)
	return &dto.NonceResponse{
		Address: checksummed,
		Nonce:   nonce,
		Message: auth.ChallengeMessage(s.issuer, checksummed, nonce),
	}, nil
}

// Login verifies the signed challenge, derives the caller's role from the
// registrar owner read, and returns a session token.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, apperrors.NewValidationError("address is not a valid hex address")
	}
	address := common.HexToAddress(req.Address)
	checksummed := address.Hex()

	nonce, err := s.nonces.Take(checksummed)
	if err != nil {
		return nil, err
	}

	message := auth.ChallengeMessage(s.issuer, checksummed, nonce)
	if err := auth.VerifyPersonalSignature(address, message, req.Signature); err != nil {
		s.logger.Warn().Str("address", checksummed).Msg("Login signature verification failed")
		return nil, err
	}

	// Role is computed once per session from the ledger owner; equality is
	// case-insensitive by construction.
	role := models.RoleStudent
	owner, err := s.registrar.Owner(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Owner read failed during login, defaulting to student role")
	} else {
		role = workflow.RoleOf(checksummed, owner.Hex())
	}

	token, expiresIn, err := s.jwt.GenerateToken(checksummed, string(role))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("address", checksummed).Str("role", string(role)).Msg("Session issued")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Address:   checksummed,
		Role:      string(role),
	}, nil
}
