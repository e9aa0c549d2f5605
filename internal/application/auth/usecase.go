package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotel-warehouse/internal/application/dto"
	"github.com/jhoicas/hotel-warehouse/internal/domain"
	"github.com/jhoicas/hotel-warehouse/internal/domain/entity"
	"github.com/jhoicas/hotel-warehouse/internal/domain/repository"
	"github.com/jhoicas/hotel-warehouse/pkg/jwt"
)

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// PasscodeVerifier checks the shared manager passcode.
type PasscodeVerifier interface {
	VerifyPasscode(ctx context.Context, passcode string) (bool, error)
}

// AuthUseCase opens sessions for warehouse profiles. Staff profiles need no secret; manager
// profiles are gated by the shared passcode.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	passcodes PasscodeVerifier
	jwtCfg    JWTConfig
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(userRepo repository.UserRepository, passcodes PasscodeVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, passcodes: passcodes, jwtCfg: jwtCfg}
}

// StartSession selects a profile and returns a signed session token.
func (uc *AuthUseCase) StartSession(ctx context.Context, in dto.SessionRequest) (*dto.SessionResponse, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("profile is required: %w", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("profile %s: %w", in.UserID, domain.ErrNotFound)
	}
	if user.IsManager() {
		ok, err := uc.passcodes.VerifyPasscode(ctx, in.Passcode)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("incorrect passcode: %w", domain.ErrUnauthorized)
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}
