package service_test

import (
	"context"
	"testing"

	"watchlist-server/internal/model"
	"watchlist-server/internal/repository"
	"watchlist-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

// MockMovieRepository
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	args := m.Called(ctx, movie)
	if result, ok := args.Get(0).(*model.Movie); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) FindByUUID(ctx context.Context, uuid string) (*model.Movie, error) {
	args := m.Called(ctx, uuid)
	if result, ok := args.Get(0).(*model.Movie); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) ListPaginated(ctx context.Context, username string, maxRuntime int, limit, offset int) ([]model.Movie, error) {
	args := m.Called(ctx, username, maxRuntime, limit, offset)
	if result, ok := args.Get(0).([]model.Movie); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) CountMovies(ctx context.Context, username string, maxRuntime int) (int, error) {
	args := m.Called(ctx, username, maxRuntime)
	return args.Int(0), args.Error(1)
}

func (m *MockMovieRepository) UpdateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	args := m.Called(ctx, movie)
	if result, ok := args.Get(0).(*model.Movie); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMovieRepository) DeleteMovie(ctx context.Context, uuid string) (bool, error) {
	args := m.Called(ctx, uuid)
	return args.Bool(0), args.Error(1)
}

// ===== HELPERS =====

func newTestMovieService() (*service.MovieService, *MockMovieRepository, *MockUserRepository) {
	mockMovieRepo := new(MockMovieRepository)
	mockUserRepo := new(MockUserRepository)
	return service.NewMovieService(mockMovieRepo, mockUserRepo), mockMovieRepo, mockUserRepo
}

// ===== TESTS =====

// Кривые параметры пагинации приводятся к дефолтам, offset считается от 1-й страницы
func TestListMovies_PaginationNormalization(t *testing.T) {
	tests := []struct {
		name           string
		maxRuntime     int
		page           int
		perPage        int
		wantMaxRuntime int
		wantLimit      int
		wantOffset     int
	}{
		{name: "defaults", maxRuntime: 0, page: 0, perPage: 0, wantMaxRuntime: 1440, wantLimit: 20, wantOffset: 0},
		{name: "negative page", maxRuntime: 120, page: -3, perPage: 10, wantMaxRuntime: 120, wantLimit: 10, wantOffset: 0},
		{name: "per_page capped", maxRuntime: 120, page: 1, perPage: 500, wantMaxRuntime: 120, wantLimit: 100, wantOffset: 0},
		{name: "third page", maxRuntime: 90, page: 3, perPage: 25, wantMaxRuntime: 90, wantLimit: 25, wantOffset: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockMovieRepo, mockUserRepo := newTestMovieService()
			ctx := context.Background()

			mockUserRepo.On("FindByUUID", ctx, "u1").
				Return(&model.User{UUID: "u1", Username: "user1"}, nil)
			mockMovieRepo.On("ListPaginated", ctx, "user1", tt.wantMaxRuntime, tt.wantLimit, tt.wantOffset).
				Return([]model.Movie{}, nil)
			mockMovieRepo.On("CountMovies", ctx, "user1", tt.wantMaxRuntime).Return(0, nil)

			_, _, err := svc.ListMovies(ctx, "u1", tt.maxRuntime, tt.page, tt.perPage)

			require.NoError(t, err)
			mockMovieRepo.AssertExpectations(t)
		})
	}
}

// Выборка идёт по username владельца, а не по uuid из токена
func TestListMovies_ResolvesOwnerUsername(t *testing.T) {
	svc, mockMovieRepo, mockUserRepo := newTestMovieService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, "b6a1e1c4-4b1d-4f1e-8b29-1234567890ab").
		Return(&model.User{UUID: "b6a1e1c4-4b1d-4f1e-8b29-1234567890ab", Username: "user1"}, nil)
	mockMovieRepo.On("ListPaginated", ctx, "user1", 1440, 20, 0).Return([]model.Movie{}, nil)
	mockMovieRepo.On("CountMovies", ctx, "user1", 1440).Return(0, nil)

	_, _, err := svc.ListMovies(ctx, "b6a1e1c4-4b1d-4f1e-8b29-1234567890ab", 0, 1, 0)

	require.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockMovieRepo.AssertExpectations(t)
}

func TestListMovies_OwnerGone(t *testing.T) {
	svc, mockMovieRepo, mockUserRepo := newTestMovieService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, _, err := svc.ListMovies(ctx, "ghost", 0, 1, 0)

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	mockMovieRepo.AssertNotCalled(t, "ListPaginated",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMovie_EmptyName(t *testing.T) {
	svc, mockMovieRepo, _ := newTestMovieService()

	_, err := svc.CreateMovie(context.Background(), "u1", &model.Movie{Name: ""})

	assert.ErrorIs(t, err, service.ErrValidation)
	mockMovieRepo.AssertNotCalled(t, "CreateMovie", mock.Anything, mock.Anything)
}

// UUID присваивается сервисом, владелец берётся из записи пользователя
func TestCreateMovie_AssignsUUIDAndOwner(t *testing.T) {
	svc, mockMovieRepo, mockUserRepo := newTestMovieService()
	ctx := context.Background()

	mockUserRepo.On("FindByUUID", ctx, "u1").
		Return(&model.User{UUID: "u1", Username: "user1"}, nil)
	mockMovieRepo.On("CreateMovie", ctx, mock.MatchedBy(func(m *model.Movie) bool {
		return m.UUID != "" && m.Name == "Stalker" && m.Username == "user1"
	})).Return(&model.Movie{UUID: "generated", Name: "Stalker", Username: "user1"}, nil)

	created, err := svc.CreateMovie(ctx, "u1", &model.Movie{Name: "Stalker"})

	require.NoError(t, err)
	assert.NotEmpty(t, created.UUID)
	mockMovieRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}
