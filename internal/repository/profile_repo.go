package repository

import (
	"context"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	UserID       int64      `gorm:"column:user_id;uniqueIndex"`
	Gender       *string    `gorm:"column:gender"`
	DateOfBirth  *time.Time `gorm:"column:date_of_birth"`
	ProfileImage *string    `gorm:"column:profile_image"`
	Bio          *string    `gorm:"column:bio"`
	Occupation   *string    `gorm:"column:occupation"`
	Street       *string    `gorm:"column:street"`
	City         *string    `gorm:"column:city"`
	State        *string    `gorm:"column:state"`
	Pincode      *string    `gorm:"column:pincode"`
	Country      *string    `gorm:"column:country"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainProfile(m profileModel) *domain.Profile {
	return &domain.Profile{
		ID:           m.ID,
		UserID:       m.UserID,
		Gender:       domain.Gender(deref(m.Gender)),
		DateOfBirth:  m.DateOfBirth,
		ProfileImage: deref(m.ProfileImage),
		Bio:          deref(m.Bio),
		Occupation:   deref(m.Occupation),
		Street:       deref(m.Street),
		City:         deref(m.City),
		State:        deref(m.State),
		Pincode:      deref(m.Pincode),
		Country:      deref(m.Country),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProfileModel(p *domain.Profile) profileModel {
	return profileModel{
		ID:           p.ID,
		UserID:       p.UserID,
		Gender:       strPtr(string(p.Gender)),
		DateOfBirth:  p.DateOfBirth,
		ProfileImage: strPtr(p.ProfileImage),
		Bio:          strPtr(p.Bio),
		Occupation:   strPtr(p.Occupation),
		Street:       strPtr(p.Street),
		City:         strPtr(p.City),
		State:        strPtr(p.State),
		Pincode:      strPtr(p.Pincode),
		Country:      strPtr(p.Country),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}
