package auth

import (
	"context"
	"testing"
	"time"

	"podstudio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

// capturingMailer records the last code instead of sending anything.
type capturingMailer struct {
	email string
	code  string
}

func (c *capturingMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	c.email = email
	c.code = code
	return nil
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)
	mailer := &capturingMailer{}

	mockUsers.On("ExistsByEmail", mock.Anything, "casey@test.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, mockJWT, mailer, 10*time.Minute)

	user, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Casey",
		Email:    "  Casey@Test.com ", // normalized before storage
		Password: "secret123",
		Role:     "customer",
	})

	require.NoError(t, err)
	assert.Equal(t, "casey@test.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.False(t, user.Verified)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of the service")

	assert.Equal(t, "casey@test.com", mailer.email)
	assert.Len(t, mailer.code, 6)
	assert.Equal(t, hashOTP(mailer.code), user.OTPHash)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	mockUsers.On("ExistsByEmail", mock.Anything, "casey@test.com").Return(true, nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Casey",
		Email:    "casey@test.com",
		Password: "secret123",
		Role:     "customer",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	mockUsers.AssertNotCalled(t, "Create")
}

func TestService_Verify_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	expires := time.Now().Add(10 * time.Minute)
	user := &domain.User{
		ID:           42,
		Email:        "casey@test.com",
		Verified:     false,
		OTPHash:      hashOTP("123456"),
		OTPExpiresAt: &expires,
	}
	mockUsers.On("GetByEmail", mock.Anything, "casey@test.com").Return(user, nil)
	mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Verified && u.OTPHash == ""
	})).Return(nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	err := service.Verify(context.Background(), VerifyRequest{Email: "casey@test.com", Code: "123456"})

	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
}

func TestService_Verify_WrongCode(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	expires := time.Now().Add(10 * time.Minute)
	user := &domain.User{
		Email:        "casey@test.com",
		OTPHash:      hashOTP("123456"),
		OTPExpiresAt: &expires,
	}
	mockUsers.On("GetByEmail", mock.Anything, "casey@test.com").Return(user, nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	err := service.Verify(context.Background(), VerifyRequest{Email: "casey@test.com", Code: "654321"})

	assert.ErrorIs(t, err, ErrInvalidOTP)
	mockUsers.AssertNotCalled(t, "Update")
}

func TestService_Verify_ExpiredCode(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	expires := time.Now().Add(-time.Minute)
	user := &domain.User{
		Email:        "casey@test.com",
		OTPHash:      hashOTP("123456"),
		OTPExpiresAt: &expires,
	}
	mockUsers.On("GetByEmail", mock.Anything, "casey@test.com").Return(user, nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	err := service.Verify(context.Background(), VerifyRequest{Email: "casey@test.com", Code: "123456"})

	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &domain.User{
		ID:           42,
		Email:        "casey@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		Verified:     true,
	}
	mockUsers.On("GetByEmail", mock.Anything, "casey@test.com").Return(user, nil)
	mockJWT.On("GenerateToken", int64(42), "customer").Return("signed.jwt.token", nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	res, err := service.Login(context.Background(), LoginRequest{Email: "casey@test.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &domain.User{Email: "casey@test.com", PasswordHash: string(hash), Verified: true}
	mockUsers.On("GetByEmail", mock.Anything, "casey@test.com").Return(user, nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	_, err := service.Login(context.Background(), LoginRequest{Email: "casey@test.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	mockUsers.On("GetByEmail", mock.Anything, "ghost@test.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	_, err := service.Login(context.Background(), LoginRequest{Email: "ghost@test.com", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_Unverified(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &domain.User{Email: "casey@test.com", PasswordHash: string(hash), Verified: false}
	mockUsers.On("GetByEmail", mock.Anything, "casey@test.com").Return(user, nil)

	service := NewService(mockUsers, mockJWT, &capturingMailer{}, 10*time.Minute)

	_, err := service.Login(context.Background(), LoginRequest{Email: "casey@test.com", Password: "secret123"})

	assert.ErrorIs(t, err, ErrNotVerified)
	mockJWT.AssertNotCalled(t, "GenerateToken")
}
