package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriadivo/goshop/internal/domain/entity"
	"github.com/satriadivo/goshop/internal/domain/repository"
	"github.com/satriadivo/goshop/pkg/apperror"
	"github.com/satriadivo/goshop/pkg/helpers"
)

func newTestUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, nil, nil, "", nil, nil, nil, testDefaultAddress, 500, false)
}

func TestRegister_AppliesDefaults(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, float64(500), u.WalletMoney)
	assert.Equal(t, testDefaultAddress, u.Address)

	// the stored credential is a hash, never the plaintext
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret123"))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"empty name", RegisterInput{Name: " ", Email: "a@example.com", Password: "secret123"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret123"}},
		{"bare local part", RegisterInput{Name: "A", Email: "user@", Password: "secret123"}},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "ab1"}},
		{"no digit", RegisterInput{Name: "A", Email: "a@example.com", Password: "passwords"}},
		{"no letter", RegisterInput{Name: "A", Email: "a@example.com", Password: "12345678"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo(&entity.User{ID: "u1", Email: "taken@example.com"})
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	requireKind(t, err, apperror.KindBadRequest, MsgEmailTaken)
}

func TestRegister_DuplicateEmailLostRace(t *testing.T) {
	// A concurrent registration can pass the lookup and hit the unique
	// index instead; the caller still sees the same bad-request answer.
	repo := newMockUserRepo()
	repo.createErr = repository.ErrDuplicate
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Someone",
		Email:    "raced@example.com",
		Password: "secret123",
	})
	requireKind(t, err, apperror.KindBadRequest, MsgEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	repo := newMockUserRepo(&entity.User{ID: "u1", Email: "a@example.com", Password: hash})
	svc := newTestUserService(repo)

	u, err := svc.Authenticate(context.Background(), "a@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.Authenticate(context.Background(), "a@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_NameAndAddress(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	repo := newMockUserRepo(&entity.User{ID: "u1", Name: "Old", Email: "a@example.com", Password: hash, Address: testDefaultAddress})
	svc := newTestUserService(repo)

	u, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Name: "New Name", Address: "123 Main St"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, "123 Main St", u.Address)

	stored, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", stored.Address)
}

func TestUpdateProfile_PasswordRehashedOnlyWhenChanged(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	repo := newMockUserRepo(&entity.User{ID: "u1", Email: "a@example.com", Password: hash})
	svc := newTestUserService(repo)

	// same plaintext resubmitted: the stored hash must not move
	u, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, hash, u.Password)

	// a new plaintext replaces the hash; both old and new verify correctly
	u, err = svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Password: "newsecret4"})
	require.NoError(t, err)
	assert.NotEqual(t, hash, u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "newsecret4"))
	assert.False(t, helpers.CompareHashAndPassword(u.Password, "secret123"))
}

func TestUpdateProfile_WeakNewPasswordRejected(t *testing.T) {
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	repo := newMockUserRepo(&entity.User{ID: "u1", Email: "a@example.com", Password: hash})
	svc := newTestUserService(repo)

	_, err = svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Password: "short1"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)

	stored, gErr := repo.GetByID(context.Background(), "u1")
	require.NoError(t, gErr)
	assert.Equal(t, hash, stored.Password)
}
