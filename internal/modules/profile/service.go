package profile

import (
	"context"
	"errors"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

// Service reads and edits the display profile. Profiles are created
// lazily: the first read for a user materialises an empty row, so
// registration never has to write one.
type Service struct {
	profiles ProfileStore
	users    UserReader
}

func NewService(profiles ProfileStore, users UserReader) *Service {
	return &Service{profiles: profiles, users: users}
}

func (s *Service) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = &domain.Profile{UserID: userID}
		if err := s.profiles.Create(ctx, p); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	// Identity fields always come from the user record.
	p.Name = user.Name
	p.Email = user.Email
	p.Phone = user.Phone
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Profile, error) {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		switch g {
		case domain.GenderMale, domain.GenderFemale, domain.GenderOther, domain.GenderUndisclosed, "":
		default:
			return nil, ErrInvalidField
		}
		p.Gender = g
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			p.DateOfBirth = nil
		} else {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return nil, ErrInvalidField
			}
			p.DateOfBirth = &dob
		}
	}
	if req.ProfileImage != nil {
		p.ProfileImage = *req.ProfileImage
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Occupation != nil {
		p.Occupation = *req.Occupation
	}
	if req.Street != nil {
		p.Street = *req.Street
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Pincode != nil {
		if *req.Pincode != "" && !domain.ValidPincode(*req.Pincode) {
			return nil, ErrInvalidField
		}
		p.Pincode = *req.Pincode
	}
	if req.Country != nil {
		p.Country = *req.Country
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
