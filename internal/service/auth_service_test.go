package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stallfinder/internal/auth"
	"stallfinder/internal/errors"
	"stallfinder/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		fullName      string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful owner registration",
			email:    "mei@example.com",
			fullName: "Mei Lin",
			password: "password123",
			role:     model.RoleOwner,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "mei@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "successful customer registration",
			email:    "sam@example.com",
			fullName: "Sam Carter",
			password: "password123",
			role:     model.RoleCustomer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			// Email matching is case-sensitive: a differently cased
			// variant of a taken address is a distinct account.
			name:     "same address with different casing registers",
			email:    "Existing@example.com",
			fullName: "Other User",
			password: "password123",
			role:     model.RoleCustomer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "Existing@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate email",
			email:    "existing@example.com",
			fullName: "Existing User",
			password: "password123",
			role:     model.RoleCustomer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: errors.ErrDuplicateEmail,
		},
		{
			name:     "invalid role",
			email:    "new@example.com",
			fullName: "New User",
			password: "password123",
			role:     model.Role("admin"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.email, tt.fullName, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.fullName, user.FullName)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	userID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "mei@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "mei@example.com").Return(&model.User{
					ID:           userID,
					Email:        "mei@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleOwner,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.String(), "mei@example.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "mei@example.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "mei@example.com").Return(&model.User{
					ID:           userID,
					Email:        "mei@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

// A repository failure must surface as an internal error, not as a
// credentials rejection.
func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "mei@example.com").Return(nil, gorm.ErrInvalidDB)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	_, _, _, err := service.Login(context.Background(), "mei@example.com", "password123")

	assert.Error(t, err)
	assert.NotEqual(t, errors.ErrInvalidCredentials, err)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestAuthService_Login_FailureCausesCollapse(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByEmail", mock.Anything, "mei@example.com").Return(&model.User{
		ID:           uuid.New(),
		Email:        "mei@example.com",
		PasswordHash: string(hashedPassword),
	}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	_, _, _, errUnknown := service.Login(context.Background(), "nobody@example.com", "password123")
	_, _, _, errWrongPassword := service.Login(context.Background(), "mei@example.com", "wrong")

	assert.Equal(t, errUnknown, errWrongPassword)
}

func TestAuthService_ResolveActor(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	user := &model.User{ID: userID, Email: "mei@example.com", Role: model.RoleOwner}

	t.Run("round trip", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

		token, err := jwtService.GenerateAccessToken(userID.String(), user.Email)
		assert.NoError(t, err)

		actor, err := service.ResolveActor(context.Background(), token)
		assert.NoError(t, err)
		assert.Equal(t, userID, actor.ID)
	})

	t.Run("malformed token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))

		actor, err := service.ResolveActor(context.Background(), "not-a-token")
		assert.Equal(t, errors.ErrUnauthenticated, err)
		assert.Nil(t, actor)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherService := auth.NewJWTService("other-secret")
		token, err := otherService.GenerateAccessToken(userID.String(), user.Email)
		assert.NoError(t, err)

		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		actor, err := service.ResolveActor(context.Background(), token)
		assert.Equal(t, errors.ErrUnauthenticated, err)
		assert.Nil(t, actor)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

		token, err := jwtService.GenerateAccessToken(userID.String(), user.Email)
		assert.NoError(t, err)

		actor, err := service.ResolveActor(context.Background(), token)
		assert.Equal(t, errors.ErrUnauthenticated, err)
		assert.Nil(t, actor)
	})
}
