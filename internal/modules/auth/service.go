package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"homeserve/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains all business logic for registration and sessions.
// Registration is OTP-gated: an account exists from the first send-otp
// call but cannot log in until the code is confirmed.
type Service struct {
	users     UserStore
	jwt       jwtService
	mailer    Mailer
	otpPepper string
	otpTTL    time.Duration
}

func NewService(users UserStore, jwt jwtService, mailer Mailer, otpPepper string, otpTTL time.Duration) *Service {
	return &Service{
		users:     users,
		jwt:       jwt,
		mailer:    mailer,
		otpPepper: otpPepper,
		otpTTL:    otpTTL,
	}
}

// RequestOTP registers (or refreshes) an unverified account and mails a
// fresh code. Re-sending replaces the previous code and the resubmitted
// profile fields: last request wins. If the mail cannot be delivered the
// previous code and profile are restored, so a broken SMTP setup never
// strands the user with a code nobody has seen.
func (s *Service) RequestOTP(ctx context.Context, req SendOTPRequest) (*domain.User, error) {
	role := domain.RoleCustomer
	if req.Role != "" {
		role = domain.UserRole(req.Role)
		if role != domain.RoleCustomer && role != domain.RoleProvider {
			return nil, ErrInvalidRole
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var prevProfile *domain.User
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsVerified {
			return nil, ErrEmailAlreadyVerified
		}
		snapshot := *user
		prevProfile = &snapshot

		hash, hashErr := hashPassword(req.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		user.Name = req.Name
		user.PasswordHash = hash
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if req.Role != "" {
			user.Role = role
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, hashErr := hashPassword(req.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		user = &domain.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: hash,
			Phone:        req.Phone,
			Role:         role,
			IsActive:     true,
			IsVerified:   false,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	prevHash := user.OTPHash
	prevExpiry := user.OTPExpiresAt

	code, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.otpTTL)
	if err := s.users.SetOTP(ctx, user.ID, hashOTP(code, s.otpPepper), &expiresAt); err != nil {
		return nil, err
	}

	if err := s.mailer.SendOTP(ctx, user.Email, user.Name, code); err != nil {
		_ = s.users.SetOTP(ctx, user.ID, prevHash, prevExpiry)
		if prevProfile != nil {
			_ = s.users.Update(ctx, prevProfile)
		}
		return nil, err
	}

	user.OTPHash = ""
	user.OTPExpiresAt = nil
	return user, nil
}

// VerifyOTP confirms the emailed code and issues the first token. A
// wrong code is not consumed; the user may retry until the code expires.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if user.IsVerified {
		return nil, "", ErrEmailAlreadyVerified
	}
	if user.OTPHash == "" || user.OTPExpiresAt == nil {
		return nil, "", ErrNoPendingOTP
	}
	if time.Now().After(*user.OTPExpiresAt) {
		return nil, "", ErrExpiredOTP
	}
	if hashOTP(req.Code, s.otpPepper) != user.OTPHash {
		return nil, "", ErrInvalidOTP
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, "", err
	}
	user.IsVerified = true
	user.OTPHash = ""
	user.OTPExpiresAt = nil

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}
	if !user.IsVerified {
		return nil, "", ErrNotVerified
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateDetails(ctx context.Context, userID int64, req UpdateDetailsRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		if !domain.ValidPhone(req.Phone) {
			return nil, errors.New("invalid phone")
		}
		user.Phone = req.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID int64, req UpdatePasswordRequest) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return "", ErrInvalidCredentials
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return "", err
	}

	// A fresh token so clients can drop the old session immediately.
	return s.jwt.GenerateToken(user.ID, string(user.Role))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}
