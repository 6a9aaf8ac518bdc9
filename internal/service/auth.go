package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	jwtmanager "github.com/morf1lo/jwt-pair-manager"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ACCESS_TOKEN_TTL = time.Minute * 15
	REFRESH_TOKEN_TTL = time.Hour * 24 * 30

	MIN_PASSWORD_LENGTH = 8
)

type authService struct {
	logger *zap.Logger
	repo *repository.Repository

	accessSecret []byte
	refreshSecret []byte
}

func newAuthService(logger *zap.Logger, repo *repository.Repository) Auth {
	return &authService{
		logger: logger,
		repo: repo,
		accessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		refreshSecret: []byte(os.Getenv("REFRESH_SECRET")),
	}
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUp) (*dto.JWTPair, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || len(input.Password) < MIN_PASSWORD_LENGTH {
		return nil, ErrInvalidSignUpInput
	}

	_, err := s.repo.Postgres.User.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Sugar().Errorf("failed to check existing user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password for user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	// display_name is NOT NULL in the schema; it defaults to the username
	displayName := input.Username
	user := model.User{
		ID: uuid.New(),
		Username: input.Username,
		Email: input.Email,
		DisplayName: &displayName,
		PasswordHash: string(hash),
	}
	if err := s.repo.Postgres.User.Create(ctx, user); err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	return s.generatePair(user.ID)
}

func (s *authService) SignIn(ctx context.Context, input dto.SignIn) (*dto.JWTPair, error) {
	user, err := s.repo.Postgres.User.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Username, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generatePair(user.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.JWTPair, error) {
	claims, err := jwtmanager.DecodeJWT(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userIDString, ok := claims["id"].(string)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.repo.Postgres.User.FindByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Sugar().Errorf("failed to find user(%s) on refresh: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.generatePair(userID)
}

func (s *authService) generatePair(userID uuid.UUID) (*dto.JWTPair, error) {
	access, err := signToken(userID, s.accessSecret, ACCESS_TOKEN_TTL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign access token for user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	refresh, err := signToken(userID, s.refreshSecret, REFRESH_TOKEN_TTL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign refresh token for user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.JWTPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id": userID.String(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
