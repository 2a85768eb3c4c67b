package booking

import (
	"context"
	"errors"
	"time"

	"homeserve/internal/domain"
	"homeserve/internal/pkg/validator"
	"homeserve/internal/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

const defaultCancelReason = "Cancelled by user"

// Service owns the booking lifecycle. The storage layer enforces the
// one-live-booking-per-provider-slot rule; field permissions, status
// transitions and snapshots live here.
type Service struct {
	bookings BookingStore
	services ServiceReader
	users    UserReader
	notifier Notifier
}

func NewService(bookings BookingStore, services ServiceReader, users UserReader, notifier Notifier) *Service {
	return &Service{
		bookings: bookings,
		services: services,
		users:    users,
		notifier: notifier,
	}
}

// Create books a service for the actor. The charged amount and the
// client contact details are snapshotted into the booking row, so later
// price or profile edits never change what an existing booking shows.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := parseScheduledDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if !domain.ValidTime(req.ScheduledTime) {
		return nil, ErrInvalidTime
	}
	if errs := validator.Validate(req.Address); errs != nil {
		return nil, ErrInvalidAddress
	}
	if !domain.ValidPincode(req.Address.Pincode) {
		return nil, ErrInvalidAddress
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceUnavailable
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceUnavailable
	}

	method := domain.PayCash
	if req.PaymentMethod != "" {
		method = domain.PaymentMethod(req.PaymentMethod)
		if !method.Valid() {
			return nil, ErrInvalidPayment
		}
	}

	bookingFor := domain.ForSelf
	if req.BookingFor != "" {
		bookingFor = domain.BookingFor(req.BookingFor)
		if bookingFor != domain.ForSelf && bookingFor != domain.ForOther {
			return nil, ErrInvalidClient
		}
	}

	clientName, clientEmail, clientPhone, err := s.resolveClient(ctx, actor, bookingFor, req.ClientDetails)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:        actor.UserID,
		ServiceID:     svc.ID,
		ScheduledDate: date,
		ScheduledTime: req.ScheduledTime,
		Address:       req.Address,
		BookingFor:    bookingFor,
		ClientName:    clientName,
		ClientEmail:   clientEmail,
		ClientPhone:   clientPhone,
		Status:        domain.BookingPending,
		TotalAmount:   svc.EffectivePrice(),
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: method,
		Notes:         req.Notes,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return s.bookings.ListAll(ctx)
	case domain.RoleProvider:
		return s.bookings.ListByProvider(ctx, actor.UserID)
	default:
		return s.bookings.ListByUser(ctx, actor.UserID)
	}
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canView(actor, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

// Update applies the partial change set with per-field permissions:
// schedule edits are for the owner while pending, provider assignment
// is admin only, work-state transitions belong to the assigned provider
// or an admin, and cancellation never goes through a provider. Once a
// booking is terminal only the payment status may still change.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if b.Status.Terminal() && touchesMoreThanPayment(req) {
		return nil, ErrTerminalState
	}

	assignedProvider := int64(0)
	if req.ServiceProviderID != nil {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		provider, err := s.users.GetByID(ctx, *req.ServiceProviderID)
		if err != nil || provider.Role != domain.RoleProvider {
			return nil, ErrProviderNotFound
		}
		b.ServiceProviderID = req.ServiceProviderID
		if b.Status == domain.BookingPending {
			b.Status = domain.BookingConfirmed
		}
		assignedProvider = provider.ID
	}

	if req.ScheduledDate != nil || req.ScheduledTime != nil {
		if !actor.IsAdmin() && (actor.UserID != b.UserID || b.Status != domain.BookingPending) {
			return nil, ErrForbidden
		}
		if req.ScheduledDate != nil {
			date, err := parseScheduledDate(*req.ScheduledDate)
			if err != nil {
				return nil, err
			}
			b.ScheduledDate = date
		}
		if req.ScheduledTime != nil {
			if !domain.ValidTime(*req.ScheduledTime) {
				return nil, ErrInvalidTime
			}
			b.ScheduledTime = *req.ScheduledTime
		}
	}

	statusChanged := false
	if req.Status != nil {
		next := domain.BookingStatus(*req.Status)
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		if next != b.Status {
			if err := s.applyStatus(actor, b, next, req.Reason); err != nil {
				return nil, err
			}
			statusChanged = true
		}
	}

	paymentChanged := false
	if req.PaymentStatus != nil {
		next := domain.PaymentStatus(*req.PaymentStatus)
		if !next.Valid() {
			return nil, ErrInvalidPayment
		}
		if actor.Role == domain.RoleCustomer && actor.UserID != b.UserID {
			return nil, ErrForbidden
		}
		paymentChanged = next == domain.PaymentPaid && b.PaymentStatus != domain.PaymentPaid
		b.PaymentStatus = next
	}

	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if assignedProvider != 0 {
		s.notifier.BookingAssigned(ctx, assignedProvider, b)
	}
	if statusChanged {
		if b.Status == domain.BookingCancelled {
			if b.ServiceProviderID != nil {
				s.notifier.BookingCancelled(ctx, *b.ServiceProviderID, b, b.CancellationReason)
			}
			if actor.UserID != b.UserID {
				s.notifier.BookingCancelled(ctx, b.UserID, b, b.CancellationReason)
			}
		} else if actor.UserID != b.UserID {
			s.notifier.BookingUpdated(ctx, b.UserID, b)
		}
	}
	if paymentChanged && b.ServiceProviderID != nil {
		s.notifier.PaymentReceived(ctx, *b.ServiceProviderID, b)
	}

	return b, nil
}

// Cancel is the dedicated cancellation path. Only the booking owner or
// an admin may use it; the slot frees immediately because the
// uniqueness index ignores cancelled rows.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Booking, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyStatus(actor, b, domain.BookingCancelled, &reason); err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if b.ServiceProviderID != nil {
		s.notifier.BookingCancelled(ctx, *b.ServiceProviderID, b, b.CancellationReason)
	}
	return b, nil
}

func (s *Service) applyStatus(actor domain.Actor, b *domain.Booking, next domain.BookingStatus, reason *string) error {
	if b.Status.Terminal() {
		return ErrTerminalState
	}

	switch next {
	case domain.BookingCancelled:
		// Providers may walk a booking through the work states but
		// never cancel it; that stays with the owner and admins.
		if !actor.IsAdmin() && actor.UserID != b.UserID {
			return ErrForbidden
		}
		now := time.Now()
		b.CancelledAt = &now
		b.CancellationReason = defaultCancelReason
		if reason != nil && *reason != "" {
			b.CancellationReason = *reason
		}
	case domain.BookingConfirmed, domain.BookingInProgress, domain.BookingCompleted:
		if !actor.IsAdmin() && !isAssignedProvider(actor, b) {
			return ErrForbidden
		}
		if next == domain.BookingCompleted && b.CompletedAt == nil {
			now := time.Now()
			b.CompletedAt = &now
		}
	case domain.BookingPending:
		if !actor.IsAdmin() {
			return ErrForbidden
		}
	}

	b.Status = next
	return nil
}

func (s *Service) resolveClient(ctx context.Context, actor domain.Actor, bookingFor domain.BookingFor, details *ClientDetails) (name, email, phone string, err error) {
	if bookingFor == domain.ForOther {
		if details == nil || details.Name == "" || !domain.ValidPhone(details.Phone) {
			return "", "", "", ErrInvalidClient
		}
		return details.Name, details.Email, details.Phone, nil
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return "", "", "", err
	}
	return user.Name, user.Email, user.Phone, nil
}

func parseScheduledDate(v string) (time.Time, error) {
	date, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	// Normalized to UTC midnight so slot equality holds across drivers.
	date = date.UTC()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func canView(actor domain.Actor, b *domain.Booking) bool {
	if actor.IsAdmin() || actor.UserID == b.UserID {
		return true
	}
	return isAssignedProvider(actor, b)
}

func isAssignedProvider(actor domain.Actor, b *domain.Booking) bool {
	return actor.Role == domain.RoleProvider &&
		b.ServiceProviderID != nil &&
		*b.ServiceProviderID == actor.UserID
}

func touchesMoreThanPayment(req UpdateBookingRequest) bool {
	return req.Status != nil ||
		req.ServiceProviderID != nil ||
		req.ScheduledDate != nil ||
		req.ScheduledTime != nil ||
		req.Notes != nil
}
