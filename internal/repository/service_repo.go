package repository

import (
	"context"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Description   string    `gorm:"column:description"`
	CategoryID    int64     `gorm:"column:category_id;index"`
	Price         float64   `gorm:"column:price;index"`
	DiscountPrice *float64  `gorm:"column:discount_price"`
	Duration      int       `gorm:"column:duration"`
	Image         *string   `gorm:"column:image"`
	Images        []string  `gorm:"column:images;serializer:json"`
	Rating        float64   `gorm:"column:rating;index"`
	ReviewCount   int       `gorm:"column:review_count"`
	IsActive      bool      `gorm:"column:is_active;index"`
	IsFeatured    bool      `gorm:"column:is_featured;index"`
	Tags          []string  `gorm:"column:tags;serializer:json"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	var image string
	if m.Image != nil {
		image = *m.Image
	}

	return &domain.Service{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		Price:         m.Price,
		DiscountPrice: m.DiscountPrice,
		Duration:      m.Duration,
		Image:         image,
		Images:        m.Images,
		Rating:        m.Rating,
		ReviewCount:   m.ReviewCount,
		IsActive:      m.IsActive,
		IsFeatured:    m.IsFeatured,
		Tags:          m.Tags,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toServiceModel(s *domain.Service) serviceModel {
	var image *string
	if s.Image != "" {
		v := s.Image
		image = &v
	}

	return serviceModel{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		CategoryID:    s.CategoryID,
		Price:         s.Price,
		DiscountPrice: s.DiscountPrice,
		Duration:      s.Duration,
		Image:         image,
		Images:        s.Images,
		Rating:        s.Rating,
		ReviewCount:   s.ReviewCount,
		IsActive:      s.IsActive,
		IsFeatured:    s.IsFeatured,
		Tags:          s.Tags,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ServiceFilter narrows public catalog listings.
type ServiceFilter struct {
	CategoryID *int64
	Featured   bool
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Sort       string
	ActiveOnly bool
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) List(ctx context.Context, f ServiceFilter) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).Model(&serviceModel{})

	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Featured {
		q = q.Where("is_featured = ?", true)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like)
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("price ASC")
	case "price_desc":
		q = q.Order("price DESC")
	case "rating":
		q = q.Order("rating DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var rows []serviceModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&serviceModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
