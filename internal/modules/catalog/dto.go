package catalog

type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Image        string `json:"image"`
	DisplayOrder int    `json:"displayOrder"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	Image        *string `json:"image,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

type CreateServiceRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	CategoryID    int64    `json:"category" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Duration      int      `json:"duration" binding:"required,gt=0"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	IsFeatured    bool     `json:"isFeatured"`
}

type UpdateServiceRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	CategoryID    *int64   `json:"category,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Duration      *int     `json:"duration,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Images        []string `json:"images,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsFeatured    *bool    `json:"isFeatured,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

// ListServicesQuery mirrors the public catalog query string.
type ListServicesQuery struct {
	Category string `form:"category"`
	Featured bool   `form:"featured"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}
