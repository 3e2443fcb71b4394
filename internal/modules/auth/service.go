package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"podstudio/internal/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

type Service struct {
	users  UserRepository
	jwt    jwtService
	mailer Mailer
	otpTTL time.Duration
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func NewService(users UserRepository, jwt jwtService, mailer Mailer, otpTTL time.Duration) *Service {
	return &Service{
		users:  users,
		jwt:    jwt,
		mailer: mailer,
		otpTTL: otpTTL,
	}
}

// Register creates an unverified account and mails a one-time code.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(s.otpTTL)

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.UserRole(req.Role),
		Verified:     false,
		OTPHash:      hashOTP(code),
		OTPExpiresAt: &expires,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("verification code dispatch failed")
		}
	}

	user.PasswordHash = ""
	return user, nil
}

// Verify checks the one-time code and marks the account verified.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Verified {
		return nil
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(hashOTP(req.Code)), []byte(user.OTPHash)) != 1 {
		return ErrInvalidOTP
	}

	user.Verified = true
	user.OTPHash = ""
	user.OTPExpiresAt = nil
	return s.users.Update(ctx, user)
}

// Login checks credentials and issues a JWT. Unverified accounts are
// rejected until they confirm the emailed code.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrNotVerified
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}

func generateOTP() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
