package authenticating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-forecast-api/infrastructure/repository/mocks"
	"github.com/vfg2006/order-forecast-api/internal/config"
	"github.com/vfg2006/order-forecast-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "test-secret"}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           1,
		Name:         "Jo",
		Email:        "jo@example.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       1,
	}
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserRepository, user *domain.User)
		check    func(t *testing.T, token string, err error)
	}{
		{
			name:     "valid credentials return a token",
			email:    "jo@example.com",
			password: "s3cret",
			setup: func(repo *mocks.MockUserRepository, user *domain.User) {
				repo.EXPECT().GetUserByEmail("jo@example.com").Return(user, nil)
			},
			check: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "email is normalized before lookup",
			email:    "  Jo@Example.COM ",
			password: "s3cret",
			setup: func(repo *mocks.MockUserRepository, user *domain.User) {
				repo.EXPECT().GetUserByEmail("jo@example.com").Return(user, nil)
			},
			check: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "wrong password",
			email:    "jo@example.com",
			password: "nope",
			setup: func(repo *mocks.MockUserRepository, user *domain.User) {
				repo.EXPECT().GetUserByEmail("jo@example.com").Return(user, nil)
			},
			check: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "unknown user",
			email:    "ghost@example.com",
			password: "s3cret",
			setup: func(repo *mocks.MockUserRepository, user *domain.User) {
				repo.EXPECT().GetUserByEmail("ghost@example.com").Return(nil, nil)
			},
			check: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "disabled account",
			email:    "jo@example.com",
			password: "s3cret",
			setup: func(repo *mocks.MockUserRepository, user *domain.User) {
				user.Active = false
				repo.EXPECT().GetUserByEmail("jo@example.com").Return(user, nil)
			},
			check: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)

				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, 1, authErr.UserID)
			},
		},
		{
			name:     "empty credentials rejected without lookup",
			email:    "",
			password: "",
			setup:    func(repo *mocks.MockUserRepository, user *domain.User) {},
			check: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "repository failure",
			email:    "jo@example.com",
			password: "s3cret",
			setup: func(repo *mocks.MockUserRepository, user *domain.User) {
				repo.EXPECT().GetUserByEmail("jo@example.com").Return(nil, errors.New("connection reset"))
			},
			check: func(t *testing.T, token string, err error) {
				require.Error(t, err)
				assert.False(t, IsCredentialsError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUserRepository(ctrl)
			service := NewService(repo, testConfig())

			tt.setup(repo, activeUser(t, "s3cret"))

			token, err := service.LoginUser(tt.email, tt.password)
			tt.check(t, token, err)
		})
	}
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name  string
		user  *domain.User
		setup func(repo *mocks.MockUserRepository)
		check func(t *testing.T, created *domain.User, err error)
	}{
		{
			name: "creates user with hashed password and defaults",
			user: &domain.User{
				Name:         "Jo",
				Email:        "  New@Example.COM ",
				PasswordHash: "plain-password",
			},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("new@example.com").Return(nil, nil)
				repo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						assert.Equal(t, "new@example.com", user.Email)
						assert.NotEqual(t, "plain-password", user.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("plain-password")))
						assert.Equal(t, 3, user.RoleID)
						assert.True(t, user.Active)
						user.ID = 2
						return user, nil
					})
			},
			check: func(t *testing.T, created *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, created.ID)
				assert.Empty(t, created.PasswordHash)
			},
		},
		{
			name: "duplicate email rejected",
			user: &domain.User{
				Name:         "Jo",
				Email:        "jo@example.com",
				PasswordHash: "plain-password",
			},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("jo@example.com").Return(activeUser(t, "s3cret"), nil)
			},
			check: func(t *testing.T, created *domain.User, err error) {
				assert.ErrorIs(t, err, ErrUserAlreadyExists)
			},
		},
		{
			name: "missing fields rejected without lookup",
			user: &domain.User{
				Email: "jo@example.com",
			},
			setup: func(repo *mocks.MockUserRepository) {},
			check: func(t *testing.T, created *domain.User, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name: "explicit role is kept",
			user: &domain.User{
				Name:         "Jo",
				Email:        "new@example.com",
				PasswordHash: "plain-password",
				RoleID:       1,
			},
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("new@example.com").Return(nil, nil)
				repo.EXPECT().
					CreateUser(gomock.Any()).
					DoAndReturn(func(user *domain.User) (*domain.User, error) {
						assert.Equal(t, 1, user.RoleID)
						return user, nil
					})
			},
			check: func(t *testing.T, created *domain.User, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUserRepository(ctrl)
			service := NewService(repo, testConfig())

			tt.setup(repo)

			created, err := service.CreateUser(tt.user)
			tt.check(t, created, err)
		})
	}
}

func TestValidateToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)
	service := NewService(repo, testConfig())

	user := activeUser(t, "s3cret")
	repo.EXPECT().GetUserByEmail("jo@example.com").Return(user, nil)

	token, err := service.LoginUser("jo@example.com", "s3cret")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.UserEmail)
	assert.Equal(t, user.RoleID, claims.UserRoleID)
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)

	issuer := NewService(repo, &config.Config{SecretKey: "other-secret"})
	verifier := NewService(repo, testConfig())

	user := activeUser(t, "s3cret")
	repo.EXPECT().GetUserByEmail("jo@example.com").Return(user, nil)

	token, err := issuer.LoginUser("jo@example.com", "s3cret")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestGetUserProfile_StripsPasswordHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)
	service := NewService(repo, testConfig())

	repo.EXPECT().GetUserByID(1).Return(activeUser(t, "s3cret"), nil)

	user, err := service.GetUserProfile(1)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	repo.EXPECT().GetUserByID(99).Return(nil, nil)
	_, err = service.GetUserProfile(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
