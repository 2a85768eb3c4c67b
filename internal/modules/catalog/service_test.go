package catalog

import (
	"context"
	"testing"

	"homeserve/internal/domain"
	"homeserve/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryStore) GetBySlugOrName(ctx context.Context, key string) (*domain.Category, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryStore) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryStore) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockServiceStore struct {
	mock.Mock
}

func (m *mockServiceStore) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceStore) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockServiceStore) List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockServiceStore) Update(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_CreateCategory_GeneratesSlug(t *testing.T) {
	cats := new(mockCategoryStore)
	cats.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Slug == "home-cleaning" && c.IsActive
	})).Return(nil)

	svc := NewService(cats, new(mockServiceStore))
	cat, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Home Cleaning"})

	assert.NoError(t, err)
	assert.Equal(t, "home-cleaning", cat.Slug)
	cats.AssertExpectations(t)
}

func TestService_UpdateCategory_RenameRecomputesSlug(t *testing.T) {
	cats := new(mockCategoryStore)
	cats.On("GetByID", mock.Anything, int64(1)).Return(&domain.Category{
		ID: 1, Name: "Cleaning", Slug: "cleaning", IsActive: true,
	}, nil)
	cats.On("Update", mock.Anything, mock.Anything).Return(nil)

	name := "Deep Cleaning"
	svc := NewService(cats, new(mockServiceStore))
	cat, err := svc.UpdateCategory(context.Background(), 1, UpdateCategoryRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "deep-cleaning", cat.Slug)
}

func TestService_CreateService_UnknownCategory(t *testing.T) {
	cats := new(mockCategoryStore)
	cats.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(cats, new(mockServiceStore))
	_, err := svc.CreateService(context.Background(), CreateServiceRequest{
		Name: "X", Description: "Y", CategoryID: 99, Price: 100, Duration: 60,
	})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestService_CreateService_DiscountMustBeBelowPrice(t *testing.T) {
	cats := new(mockCategoryStore)
	cats.On("GetByID", mock.Anything, int64(1)).Return(&domain.Category{ID: 1}, nil)

	discount := 150.0
	svc := NewService(cats, new(mockServiceStore))
	_, err := svc.CreateService(context.Background(), CreateServiceRequest{
		Name: "X", Description: "Y", CategoryID: 1, Price: 100, Duration: 60,
		DiscountPrice: &discount,
	})

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestService_UpdateService_NeverTouchesRating(t *testing.T) {
	cats := new(mockCategoryStore)
	svcs := new(mockServiceStore)

	svcs.On("GetByID", mock.Anything, int64(5)).Return(&domain.Service{
		ID: 5, Name: "Old", Price: 100, Rating: 4.5, ReviewCount: 12, IsActive: true,
	}, nil)
	svcs.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
		return s.Rating == 4.5 && s.ReviewCount == 12
	})).Return(nil)

	name := "New"
	svc := NewService(cats, svcs)
	updated, err := svc.UpdateService(context.Background(), 5, UpdateServiceRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, 4.5, updated.Rating)
	svcs.AssertExpectations(t)
}

func TestService_ListServices_ResolvesCategoryBySlug(t *testing.T) {
	cats := new(mockCategoryStore)
	svcs := new(mockServiceStore)

	cats.On("GetBySlugOrName", mock.Anything, "plumbing").Return(&domain.Category{ID: 3}, nil)
	svcs.On("List", mock.Anything, mock.MatchedBy(func(f repository.ServiceFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == 3 && f.ActiveOnly
	})).Return([]domain.Service{{ID: 1}}, nil)

	svc := NewService(cats, svcs)
	list, err := svc.ListServices(context.Background(), ListServicesQuery{Category: "plumbing"}, false)

	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_ListServices_UnknownCategoryYieldsEmpty(t *testing.T) {
	cats := new(mockCategoryStore)
	cats.On("GetBySlugOrName", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(cats, new(mockServiceStore))
	list, err := svc.ListServices(context.Background(), ListServicesQuery{Category: "nope"}, false)

	assert.NoError(t, err)
	assert.Empty(t, list)
}
