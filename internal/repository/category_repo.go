package repository

import (
	"context"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex"`
	Description  string    `gorm:"column:description"`
	Icon         string    `gorm:"column:icon"`
	Image        *string   `gorm:"column:image"`
	Slug         string    `gorm:"column:slug;uniqueIndex"`
	IsActive     bool      `gorm:"column:is_active;index"`
	DisplayOrder int       `gorm:"column:display_order"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (categoryModel) TableName() string { return "categories" }

func toDomainCategory(m categoryModel) *domain.Category {
	var image string
	if m.Image != nil {
		image = *m.Image
	}

	return &domain.Category{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Icon:         m.Icon,
		Image:        image,
		Slug:         m.Slug,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toCategoryModel(c *domain.Category) categoryModel {
	var image *string
	if c.Image != "" {
		v := c.Image
		image = &v
	}

	return categoryModel{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Icon:         c.Icon,
		Image:        image,
		Slug:         c.Slug,
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := toCategoryModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCategory(m)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCategory(m), nil
}

// GetBySlugOrName resolves catalog filters that address a category by
// slug or by (case-insensitive) name instead of numeric id.
func (r *CategoryRepository) GetBySlugOrName(ctx context.Context, key string) (*domain.Category, error) {
	var m categoryModel
	tx := r.db.WithContext(ctx).
		Where("slug = ? OR LOWER(name) = LOWER(?)", key, key).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCategory(m), nil
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Order("display_order ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []categoryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCategory(m))
	}
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	m := toCategoryModel(c)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCategory(m)
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&categoryModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
