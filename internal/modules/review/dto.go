package review

type CreateReviewRequest struct {
	BookingID int64    `json:"booking" binding:"required"`
	Rating    int      `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string   `json:"comment"`
	Images    []string `json:"images"`
}

type UpdateReviewRequest struct {
	Rating  *int     `json:"rating,omitempty" binding:"omitempty,gte=1,lte=5"`
	Comment *string  `json:"comment,omitempty"`
	Images  []string `json:"images,omitempty"`
}
