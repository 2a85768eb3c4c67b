package domain

import (
	"regexp"
	"strings"
	"time"
)

type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required,max=50"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	Image        string    `json:"image,omitempty"`
	Slug         string    `json:"slug"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Service struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required,max=100"`
	Description   string    `json:"description"`
	CategoryID    int64     `json:"category_id"`
	Price         float64   `json:"price" validate:"gte=0"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Duration      int       `json:"duration"` // minutes
	Image         string    `json:"image,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	IsActive      bool      `json:"is_active"`
	IsFeatured    bool      `json:"is_featured"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty"`
}

// EffectivePrice is the amount a booking is charged at creation time:
// the discounted price when one is set, the list price otherwise.
func (s *Service) EffectivePrice() float64 {
	if s.DiscountPrice != nil && *s.DiscountPrice > 0 {
		return *s.DiscountPrice
	}
	return s.Price
}

var slugStrip = regexp.MustCompile(`[^\w-]+`)

// Slugify derives a URL slug from a category name: lowercase,
// whitespace runs collapsed to single hyphens, everything else stripped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	return slugStrip.ReplaceAllString(s, "")
}
