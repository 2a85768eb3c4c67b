package repository

import (
	"context"
	"math"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	ServiceID int64     `gorm:"column:service_id;index"`
	BookingID int64     `gorm:"column:booking_id;uniqueIndex"`
	Rating    int       `gorm:"column:rating"`
	Comment   string    `gorm:"column:comment"`
	Images    []string  `gorm:"column:images;serializer:json"`
	Helpful   int       `gorm:"column:helpful"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:        m.ID,
		UserID:    m.UserID,
		ServiceID: m.ServiceID,
		BookingID: m.BookingID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		Images:    m.Images,
		Helpful:   m.Helpful,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	return reviewModel{
		ID:        rv.ID,
		UserID:    rv.UserID,
		ServiceID: rv.ServiceID,
		BookingID: rv.BookingID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		Images:    rv.Images,
		Helpful:   rv.Helpful,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

// Create inserts the review and recomputes the service aggregate in the
// same transaction. The unique index on booking_id rejects a second
// review for the same booking; the raw error is returned for the caller
// to classify.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return recomputeRating(tx, m.ServiceID)
	})
	if err != nil {
		return err
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return recomputeRating(tx, m.ServiceID)
	})
	if err != nil {
		return err
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id, serviceID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&reviewModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeRating(tx, serviceID)
	})
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int64) ([]domain.Review, error) {
	var rows []reviewModel
	tx := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

// recomputeRating rebuilds the service aggregate from the full review
// set. A full scan keeps the stored rating equal to the true mean after
// any create, edit or delete.
func recomputeRating(tx *gorm.DB, serviceID int64) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&reviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("service_id = ?", serviceID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	rating := math.Round(agg.Avg*10) / 10
	return tx.Model(&serviceModel{}).Where("id = ?", serviceID).Updates(map[string]any{
		"rating":       rating,
		"review_count": agg.Count,
	}).Error
}
