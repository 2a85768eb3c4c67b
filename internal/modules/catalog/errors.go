package catalog

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrInvalidDiscount   = errors.New("discount must be below the base price")
)
