package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeserve/internal/database"
	"homeserve/internal/domain"
	"homeserve/internal/middleware"
	"homeserve/internal/modules/auth"
	"homeserve/internal/modules/booking"
	"homeserve/internal/modules/catalog"
	"homeserve/internal/modules/notification"
	"homeserve/internal/modules/profile"
	"homeserve/internal/modules/review"
	"homeserve/internal/modules/users"
	jwtsvc "homeserve/internal/pkg/jwt"
	"homeserve/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPepper = "e2e-pepper"

// captureMailer keeps the last code in memory so tests can complete the
// verification round trip.
type captureMailer struct {
	lastEmail string
	lastCode  string
}

func (m *captureMailer) SendOTP(_ context.Context, email, _, code string) error {
	m.lastEmail = email
	m.lastCode = code
	return nil
}

type suite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
	mailer *captureMailer

	adminToken    string
	customerToken string
	providerToken string

	customerID int64
	providerID int64
	serviceID  int64
}

type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setup(t *testing.T) *suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	ml := &captureMailer{}

	notificationService := notification.NewService(notificationRepo)
	authService := auth.NewService(userRepo, j, ml, testPepper, 10*time.Minute)
	usersService := users.NewService(userRepo)
	catalogService := catalog.NewService(categoryRepo, serviceRepo)
	bookingService := booking.NewService(bookingRepo, serviceRepo, userRepo, notificationService)
	reviewService := review.NewService(reviewRepo, bookingRepo, notificationService)
	profileService := profile.NewService(profileRepo, userRepo)

	authHandler := auth.NewHandler(authService)
	usersHandler := users.NewHandler(usersService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)
	notificationHandler := notification.NewHandler(notificationService)
	profileHandler := profile.NewHandler(profileService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	authHandler.RegisterPublicRoutes(api)
	catalogHandler.RegisterPublicRoutes(api)
	reviewHandler.RegisterPublicRoutes(api)
	profileHandler.RegisterPublicRoutes(api)

	protected := api.Group("/")
	protected.Use(middleware.JWTAuth(j))
	authHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterProtectedRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)
	notificationHandler.RegisterProtectedRoutes(protected)
	profileHandler.RegisterProtectedRoutes(protected)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	usersHandler.RegisterAdminRoutes(admin)
	catalogHandler.RegisterAdminRoutes(admin)

	s := &suite{router: r, db: db, jwt: j, mailer: ml}
	s.seed(t, userRepo, categoryRepo, serviceRepo)
	return s
}

func (s *suite) seed(t *testing.T, userRepo *repository.UserRepository, categoryRepo *repository.CategoryRepository, serviceRepo *repository.ServiceRepository) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	adminUser := &domain.User{
		Name: "Admin", Email: "admin@test.local", PasswordHash: string(hash),
		Role: domain.RoleAdmin, IsActive: true, IsVerified: true,
	}
	require.NoError(t, userRepo.Create(ctx, adminUser))

	customer := &domain.User{
		Name: "Asha", Email: "asha@test.local", PasswordHash: string(hash),
		Phone: "9876543210", Role: domain.RoleCustomer, IsActive: true, IsVerified: true,
	}
	require.NoError(t, userRepo.Create(ctx, customer))

	provider := &domain.User{
		Name: "Suresh", Email: "suresh@test.local", PasswordHash: string(hash),
		Phone: "9876543211", Role: domain.RoleProvider, IsActive: true, IsVerified: true,
	}
	require.NoError(t, userRepo.Create(ctx, provider))

	cat := &domain.Category{Name: "Cleaning", Slug: "cleaning", IsActive: true}
	require.NoError(t, categoryRepo.Create(ctx, cat))

	svc := &domain.Service{
		Name: "Deep Home Cleaning", Description: "Full house clean",
		CategoryID: cat.ID, Price: 499, Duration: 120, IsActive: true,
	}
	require.NoError(t, serviceRepo.Create(ctx, svc))

	s.customerID = customer.ID
	s.providerID = provider.ID
	s.serviceID = svc.ID

	var err error
	s.adminToken, err = s.jwt.GenerateToken(adminUser.ID, "admin")
	require.NoError(t, err)
	s.customerToken, err = s.jwt.GenerateToken(customer.ID, "customer")
	require.NoError(t, err)
	s.providerToken, err = s.jwt.GenerateToken(provider.ID, "provider")
	require.NoError(t, err)
}

func (s *suite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func bookingRequest(serviceID int64) map[string]any {
	return map[string]any{
		"service":       serviceID,
		"scheduledDate": futureDate(),
		"scheduledTime": "10:00",
		"address": map[string]any{
			"street": "12 MG Road", "city": "Bengaluru", "state": "Karnataka", "pincode": "560001",
		},
	}
}

func TestOTPRegistrationFlow(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{
		"name": "New User", "email": "new@test.local", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.Len(t, s.mailer.lastCode, 6)

	// Wrong code is rejected and not consumed.
	wrong := "000000"
	if s.mailer.lastCode == wrong {
		wrong = "000001"
	}
	w, _ = s.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
		"email": "new@test.local", "code": wrong,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login before verification is refused.
	w, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "new@test.local", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The real code still works after the failed attempt.
	w, env = s.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
		"email": "new@test.local", "code": s.mailer.lastCode,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var verified struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verified))
	assert.NotEmpty(t, verified.Token)

	// Re-registering the same email is now a conflict.
	w, _ = s.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{
		"name": "New User", "email": "new@test.local", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "new@test.local", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingLifecycle(t *testing.T) {
	s := setup(t)

	// Customer books the 499 service; the amount is snapshotted.
	w, env := s.do(t, http.MethodPost, "/api/bookings", s.customerToken, bookingRequest(s.serviceID))
	require.Equal(t, http.StatusCreated, w.Code)

	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, 499.0, b.TotalAmount)
	assert.Equal(t, domain.BookingPending, b.Status)

	// Admin assigns the provider; the booking confirms.
	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	// A second booking for the same provider, date and time dies at the
	// storage layer.
	w, env = s.do(t, http.MethodPost, "/api/bookings", s.customerToken, bookingRequest(s.serviceID))
	require.Equal(t, http.StatusCreated, w.Code)
	var b2 domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b2))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b2.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The provider works the job to completion but cannot cancel it.
	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.providerToken, map[string]any{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, status := range []string{"in-progress", "completed"} {
		w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.providerToken, map[string]any{
			"status": status,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}
	require.NoError(t, json.Unmarshal(env.Data, &b))
	require.NotNil(t, b.CompletedAt)

	// Completion frees the slot for the provider.
	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b2.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Review the completed booking; the service aggregate updates.
	w, env = s.do(t, http.MethodPost, "/api/reviews", s.customerToken, map[string]any{
		"booking": b.ID, "rating": 5, "comment": "Spotless",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/services/%d", s.serviceID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var svc domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	assert.Equal(t, 5.0, svc.Rating)
	assert.Equal(t, 1, svc.ReviewCount)

	// One review per booking.
	w, _ = s.do(t, http.MethodPost, "/api/reviews", s.customerToken, map[string]any{
		"booking": b.ID, "rating": 4,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Completed bookings cannot be cancelled.
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", b.ID), s.customerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Provider sees the notifications written along the way.
	w, env = s.do(t, http.MethodGet, "/api/notifications", s.providerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Greater(t, env.Count, 0)
}

// completedBooking walks a fresh booking through assignment and the
// provider work states so it can be reviewed.
func (s *suite) completedBooking(t *testing.T, scheduledTime string) int64 {
	body := bookingRequest(s.serviceID)
	body["scheduledTime"] = scheduledTime

	w, env := s.do(t, http.MethodPost, "/api/bookings", s.customerToken, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	for _, status := range []string{"in-progress", "completed"} {
		w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.providerToken, map[string]any{
			"status": status,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}
	return b.ID
}

func (s *suite) fetchService(t *testing.T) domain.Service {
	w, env := s.do(t, http.MethodGet, fmt.Sprintf("/api/services/%d", s.serviceID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var svc domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))
	return svc
}

func TestReviewAggregateRecompute(t *testing.T) {
	s := setup(t)

	first := s.completedBooking(t, "09:00")
	second := s.completedBooking(t, "13:00")

	w, env := s.do(t, http.MethodPost, "/api/reviews", s.customerToken, map[string]any{
		"booking": first, "rating": 4, "comment": "Good",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var r1 domain.Review
	require.NoError(t, json.Unmarshal(env.Data, &r1))

	w, env = s.do(t, http.MethodPost, "/api/reviews", s.customerToken, map[string]any{
		"booking": second, "rating": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var r2 domain.Review
	require.NoError(t, json.Unmarshal(env.Data, &r2))

	// Mean of 4 and 5, one decimal.
	svc := s.fetchService(t)
	assert.Equal(t, 4.5, svc.Rating)
	assert.Equal(t, 2, svc.ReviewCount)

	// Deleting a review recomputes from the survivors.
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", r1.ID), s.customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	svc = s.fetchService(t)
	assert.Equal(t, 5.0, svc.Rating)
	assert.Equal(t, 1, svc.ReviewCount)

	// An admin may remove the last one; the aggregate resets to zero.
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", r2.ID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	svc = s.fetchService(t)
	assert.Equal(t, 0.0, svc.Rating)
	assert.Equal(t, 0, svc.ReviewCount)
}

func TestBookingAmountFrozenAfterPriceChange(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodPost, "/api/bookings", s.customerToken, bookingRequest(s.serviceID))
	require.Equal(t, http.StatusCreated, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))
	require.Equal(t, 499.0, b.TotalAmount)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/services/%d", s.serviceID), s.adminToken, map[string]any{
		"price": 999,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", b.ID), s.customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, 499.0, b.TotalAmount)
}

func TestCancelFreesSlotAndScopedLists(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodPost, "/api/bookings", s.customerToken, bookingRequest(s.serviceID))
	require.Equal(t, http.StatusCreated, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Cancel with a custom reason, then rebook the exact same slot.
	w, env = s.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", b.ID), s.customerToken, map[string]any{
		"reason": "Change of plans",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, "Change of plans", b.CancellationReason)
	require.NotNil(t, b.CancelledAt)

	w, env = s.do(t, http.MethodPost, "/api/bookings", s.customerToken, bookingRequest(s.serviceID))
	require.Equal(t, http.StatusCreated, w.Code)
	var b2 domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b2))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b2.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The provider only sees assigned bookings; the customer sees both.
	w, env = s.do(t, http.MethodGet, "/api/bookings", s.providerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Count)

	w, env = s.do(t, http.MethodGet, "/api/bookings", s.customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, env.Count)

	// A stranger cannot read someone else's booking.
	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", b2.ID), s.providerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	strangerToken, err := s.jwt.GenerateToken(9999, "customer")
	require.NoError(t, err)
	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", b2.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminGuards(t *testing.T) {
	s := setup(t)

	// Catalog writes are admin only.
	w, _ := s.do(t, http.MethodPost, "/api/admin/categories", s.customerToken, map[string]any{
		"name": "Painting",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]any{
		"name": "Painting",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var cat domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &cat))
	assert.Equal(t, "painting", cat.Slug)

	// Duplicate category name is a conflict.
	w, _ = s.do(t, http.MethodPost, "/api/admin/categories", s.adminToken, map[string]any{
		"name": "Painting",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// User management is admin only.
	w, _ = s.do(t, http.MethodGet, "/api/admin/users", s.providerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/admin/users", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, env.Count)
}

func TestProfileLazyCreationAndPublicCard(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodGet, "/api/profile/me", s.customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p domain.Profile
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, "asha@test.local", p.Email)

	w, env = s.do(t, http.MethodPut, "/api/profile/me", s.customerToken, map[string]any{
		"city": "Bengaluru", "bio": "Plant person",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Bengaluru", p.City)

	// The public card hides contact details.
	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/profile/user/%d", s.customerID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Asha", p.Name)
	assert.Empty(t, p.Email)
	assert.Empty(t, p.Phone)
}

func TestNotificationReadFlow(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodPost, "/api/bookings", s.customerToken, bookingRequest(s.serviceID))
	require.Equal(t, http.StatusCreated, w.Code)
	var b domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d", b.ID), s.adminToken, map[string]any{
		"serviceProvider": s.providerID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/notifications/unread-count", s.providerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Equal(t, int64(1), count.Count)

	w, env = s.do(t, http.MethodGet, "/api/notifications", s.providerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Notification
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotifyBookingAssigned, list[0].Type)

	// Another user cannot mark it read.
	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", list[0].ID), s.customerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", list[0].ID), s.providerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/notifications/unread-count", s.providerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Equal(t, int64(0), count.Count)
}
