package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mamalink/mamalink-backend/internal/config"
	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/models"
	"github.com/mamalink/mamalink-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	profiles  *repository.ProfileRepository
	appleKeys *appleKeyClient
}

func NewAuthService(db *gorm.DB, cfg *config.Config, profiles *repository.ProfileRepository) *AuthService {
	return &AuthService{
		db:        db,
		cfg:       cfg,
		profiles:  profiles,
		appleKeys: newAppleKeyClient(),
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, NewValidationError("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hash),
		AuthProvider: "email",
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.syncProfile(ctx, &user, req.DisplayName, "")

	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.WithContext(ctx).Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if user.AuthProvider != "apple" {
		if password == "" {
			return NewValidationError("password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
	}

	// Chat history stays: messages are append-only and the partner keeps
	// their side of the conversation.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		tx.Where("user_id = ?", userID).Delete(&models.PostAction{})
		tx.Where("user_id = ?", userID).Delete(&models.Notification{})
		tx.Where("reporter_id = ?", userID).Delete(&models.Report{})
		tx.Where("blocker_id = ? OR blocked_id = ?", userID, userID).Delete(&models.Block{})
		tx.Where("author_id = ?", userID).Delete(&models.Post{})
		tx.Where("user_id = ?", userID).Delete(&models.Profile{})
		return tx.Delete(&user).Error
	})
}

func (s *AuthService) AppleSignIn(ctx context.Context, req *dto.AppleSignInRequest) (*dto.AuthResponse, error) {
	if req.IdentityToken == "" {
		return nil, NewValidationError("identity token is required")
	}

	claims, err := s.appleKeys.VerifyToken(req.IdentityToken, s.cfg.AppleBundleID)
	if err != nil {
		slog.Error("apple token verification failed", "error", err)
		return nil, fmt.Errorf("failed to verify Apple identity token: %w", err)
	}

	appleUserID := claims.Sub
	email := claims.Email
	if email == "" {
		email = req.Email
	}
	if email == "" {
		email = appleUserID + "@privaterelay.appleid.com"
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Where("apple_user_id = ? OR email = ?", appleUserID, email).First(&user).Error

	if err != nil {
		user = models.User{
			ID:           uuid.New(),
			Email:        email,
			Password:     "",
			AppleUserID:  &appleUserID,
			AuthProvider: "apple",
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create Apple user: %w", err)
		}
	} else if user.AppleUserID == nil {
		s.db.Model(&user).Updates(map[string]interface{}{
			"apple_user_id": appleUserID,
			"auth_provider": "apple",
		})
		user.AppleUserID = &appleUserID
		user.AuthProvider = "apple"
	}

	s.syncProfile(ctx, &user, req.FullName, "")

	return s.generateTokenPair(&user)
}

// syncProfile upserts the community profile from the identity record,
// mirroring how the client-side identity provider used to push display
// name and avatar into the profiles table on every sign-in.
func (s *AuthService) syncProfile(ctx context.Context, user *models.User, displayName, avatarURL string) {
	if displayName = strings.TrimSpace(displayName); displayName == "" {
		displayName = strings.Split(user.Email, "@")[0]
	}

	profile := &models.Profile{
		UserID:      user.ID,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		TrustScore:  models.TrustScoreInitial,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		slog.Error("profile sync failed", "error", err, "user_id", user.ID.String())
	}
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			IsAppleUser: user.AuthProvider == "apple",
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
