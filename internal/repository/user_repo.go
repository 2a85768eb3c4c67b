package repository

import (
	"context"
	"strings"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	Name         string     `gorm:"column:name"`
	Email        string     `gorm:"column:email;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash"`
	Phone        *string    `gorm:"column:phone"`
	Role         string     `gorm:"column:role;index"`
	IsActive     bool       `gorm:"column:is_active"`
	IsVerified   bool       `gorm:"column:is_verified"`
	OTPHash      *string    `gorm:"column:otp_hash"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone, otpHash string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.OTPHash != nil {
		otpHash = *m.OTPHash
	}

	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        phone,
		Role:         domain.UserRole(m.Role),
		IsActive:     m.IsActive,
		IsVerified:   m.IsVerified,
		OTPHash:      otpHash,
		OTPExpiresAt: m.OTPExpiresAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, otpHash *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.OTPHash != "" {
		v := u.OTPHash
		otpHash = &v
	}

	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        email,
		PasswordHash: u.PasswordHash,
		Phone:        phone,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		OTPHash:      otpHash,
		OTPExpiresAt: u.OTPExpiresAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

// SetOTP stores a fresh code hash and expiry; last request wins.
// Passing a nil expiry clears both fields.
func (r *UserRepository) SetOTP(ctx context.Context, userID int64, otpHash string, expiresAt *time.Time) error {
	var hash *string
	if otpHash != "" {
		hash = &otpHash
	}
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"otp_hash":       hash,
		"otp_expires_at": expiresAt,
	}).Error
}

// MarkVerified flips the user to verified and clears the OTP fields in
// the same write, so a verified user can never re-enter the OTP window.
func (r *UserRepository) MarkVerified(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"is_verified":    true,
		"otp_hash":       nil,
		"otp_expires_at": nil,
	}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
