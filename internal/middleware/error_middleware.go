package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/models/dto"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the API's error envelope. When the
// error carries a CustomError wrapper, the wrapper's message is surfaced;
// otherwise a generic message for the matched category is used.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, 400, dto.ErrorCodeValidationFailed, err, "Validation failed")
	case errors.Is(err, apperrors.ErrInvalidAddress):
		respondError(c, 400, dto.ErrorCodeValidationFailed, err, "Invalid address")
	case errors.Is(err, apperrors.ErrInvalidGPA):
		respondError(c, 400, dto.ErrorCodeValidationFailed, err, "Invalid GPA value")
	case errors.Is(err, apperrors.ErrUnknownMajor):
		respondError(c, 400, dto.ErrorCodeValidationFailed, err, "Unknown faculty or major")
	case errors.Is(err, apperrors.ErrInvalidSignature):
		respondError(c, 401, dto.ErrorCodeInvalidSignature, err, "Signature verification failed")
	case errors.Is(err, apperrors.ErrNonceNotFound):
		respondError(c, 401, dto.ErrorCodeInvalidNonce, err, "No active challenge for that address")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, 401, dto.ErrorCodeExpiredToken, err, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, 401, dto.ErrorCodeInvalidToken, err, "Invalid token")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, 401, dto.ErrorCodeUnauthorized, err, "Invalid credentials")
	case errors.Is(err, apperrors.ErrSigningDeclined):
		respondError(c, 401, dto.ErrorCodeUnauthorized, err, "Signing was declined")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.ErrorCodeForbidden, err, "Permission denied")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, err, "Resource not found")
	case errors.Is(err, apperrors.ErrCallNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, err, "Call not found")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, 409, dto.ErrorCodeActionInFlight, err, "An action of this kind is already in flight")
	case errors.Is(err, apperrors.ErrCostUnresolved):
		respondError(c, 409, dto.ErrorCodeLedgerUnavailable, err, "Enrollment fee could not be resolved")
	case errors.Is(err, apperrors.ErrChainUnavailable):
		respondError(c, 502, dto.ErrorCodeLedgerUnavailable, err, "Ledger read failed")
	default:
		respondError(c, 500, dto.ErrorCodeInternalServer, nil, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, err error, fallback string) {
	message := fallback
	var custom *apperrors.CustomError
	if err != nil && errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}
