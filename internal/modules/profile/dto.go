package profile

type UpdateProfileRequest struct {
	Gender       *string `json:"gender,omitempty"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Occupation   *string `json:"occupation,omitempty"`
	Street       *string `json:"street,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Pincode      *string `json:"pincode,omitempty"`
	Country      *string `json:"country,omitempty"`
}
