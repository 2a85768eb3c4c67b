package repository

import (
	"context"
	"time"

	"homeserve/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	UserID             int64      `gorm:"column:user_id;index"`
	ServiceID          int64      `gorm:"column:service_id"`
	ServiceProviderID  *int64     `gorm:"column:service_provider_id;index"`
	ScheduledDate      time.Time  `gorm:"column:scheduled_date;index"`
	ScheduledTime      string     `gorm:"column:scheduled_time"`
	Street             string     `gorm:"column:street"`
	City               string     `gorm:"column:city"`
	State              string     `gorm:"column:state"`
	Pincode            string     `gorm:"column:pincode"`
	Landmark           *string    `gorm:"column:landmark"`
	BookingFor         string     `gorm:"column:booking_for"`
	ClientName         string     `gorm:"column:client_name"`
	ClientEmail        string     `gorm:"column:client_email"`
	ClientPhone        string     `gorm:"column:client_phone"`
	Status             string     `gorm:"column:status;index"`
	TotalAmount        float64    `gorm:"column:total_amount"`
	PaymentStatus      string     `gorm:"column:payment_status"`
	PaymentMethod      string     `gorm:"column:payment_method"`
	Notes              *string    `gorm:"column:notes"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CompletedAt        *time.Time `gorm:"column:completed_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes, reason, landmark string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}
	if m.Landmark != nil {
		landmark = *m.Landmark
	}

	return &domain.Booking{
		ID:                m.ID,
		UserID:            m.UserID,
		ServiceID:         m.ServiceID,
		ServiceProviderID: m.ServiceProviderID,
		ScheduledDate:     m.ScheduledDate,
		ScheduledTime:     m.ScheduledTime,
		Address: domain.Address{
			Street:   m.Street,
			City:     m.City,
			State:    m.State,
			Pincode:  m.Pincode,
			Landmark: landmark,
		},
		BookingFor:         domain.BookingFor(m.BookingFor),
		ClientName:         m.ClientName,
		ClientEmail:        m.ClientEmail,
		ClientPhone:        m.ClientPhone,
		Status:             domain.BookingStatus(m.Status),
		TotalAmount:        m.TotalAmount,
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		PaymentMethod:      domain.PaymentMethod(m.PaymentMethod),
		Notes:              notes,
		CancellationReason: reason,
		CompletedAt:        m.CompletedAt,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes, reason, landmark *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}
	if b.Address.Landmark != "" {
		v := b.Address.Landmark
		landmark = &v
	}

	return bookingModel{
		ID:                 b.ID,
		UserID:             b.UserID,
		ServiceID:          b.ServiceID,
		ServiceProviderID:  b.ServiceProviderID,
		ScheduledDate:      b.ScheduledDate,
		ScheduledTime:      b.ScheduledTime,
		Street:             b.Address.Street,
		City:               b.Address.City,
		State:              b.Address.State,
		Pincode:            b.Address.Pincode,
		Landmark:           landmark,
		BookingFor:         string(b.BookingFor),
		ClientName:         b.ClientName,
		ClientEmail:        b.ClientEmail,
		ClientPhone:        b.ClientPhone,
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      string(b.PaymentMethod),
		Notes:              notes,
		CancellationReason: reason,
		CompletedAt:        b.CompletedAt,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// Create inserts the booking. A violation of the no-double-booking
// index surfaces as the driver's duplicate-key error; classification
// is left to the caller.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Booking, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("service_provider_id = ?", providerID))
}

func (r *BookingRepository) list(_ context.Context, q *gorm.DB) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
