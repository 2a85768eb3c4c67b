package review

import (
	"context"
	"errors"

	"homeserve/internal/domain"
	"homeserve/internal/repository"

	"gorm.io/gorm"
)

// Service gates reviews on completed bookings: one review per booking,
// written by the booking owner, aggregated into the service rating
// atomically by the storage layer.
type Service struct {
	reviews  ReviewStore
	bookings BookingReader
	notifier ProviderNotifier
}

func NewService(reviews ReviewStore, bookings BookingReader, notifier ProviderNotifier) *Service {
	return &Service{reviews: reviews, bookings: bookings, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateReviewRequest) (*domain.Review, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	rv := &domain.Review{
		UserID:    actor.UserID,
		ServiceID: b.ServiceID,
		BookingID: b.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    req.Images,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if b.ServiceProviderID != nil {
		s.notifier.ReviewReceived(ctx, *b.ServiceProviderID, b.ServiceID, rv.Rating)
	}
	return rv, nil
}

func (s *Service) ListByService(ctx context.Context, serviceID int64) ([]domain.Review, error) {
	return s.reviews.ListByService(ctx, serviceID)
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateReviewRequest) (*domain.Review, error) {
	rv, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = *req.Comment
	}
	if req.Images != nil {
		rv.Images = req.Images
	}

	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	rv, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.reviews.Delete(ctx, rv.ID, rv.ServiceID)
}

func (s *Service) getOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && rv.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return rv, nil
}
