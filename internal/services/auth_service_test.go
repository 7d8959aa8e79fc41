package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipe-app/api/internal/repository"
	"github.com/recipe-app/api/internal/testutil"
	appErr "github.com/recipe-app/api/pkg/errors"
)

var testSecret = []byte("test-secret-0123456789")

func newTestAuth(t *testing.T) *authService {
	t.Helper()
	db := testutil.OpenTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour).(*authService)
	svc.setCost(bcrypt.MinCost)
	return svc
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"  padded@Example.org ", "padded@example.org"},
	}
	for _, tc := range cases {
		got, err := NormalizeEmail(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)

		again, err := NormalizeEmail(got)
		require.NoError(t, err, got)
		assert.Equal(t, got, again, "normalizing twice changes nothing")
	}

	_, err := NormalizeEmail("")
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = NormalizeEmail("not-an-email")
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestCreateUserNormalizesAndHashes(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "Test@EXAMPLE.com", "testpass123", UserExtra{Name: " Test Name "})
	require.NoError(t, err)
	assert.Equal(t, "Test@example.com", u.Email)
	assert.Equal(t, "Test Name", u.Name)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.False(t, u.IsSuperuser)
	assert.NotEqual(t, "testpass123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("testpass123")))
}

func TestCreateUserRejectsEmptyEmailAndDuplicates(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "", "testpass123", UserExtra{})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = svc.CreateUser(ctx, "dup@example.com", "testpass123", UserExtra{})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "dup@EXAMPLE.COM", "otherpass", UserExtra{})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestCreateSuperuser(t *testing.T) {
	svc := newTestAuth(t)

	u, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "adminpass")
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)

	stored, err := svc.ActiveUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSuperuser)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "cook@example.com", "goodpass", UserExtra{})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "cook@EXAMPLE.com", "goodpass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "cook@example.com", "wrongpass")
	assert.Same(t, ErrAuthFailed, err)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "goodpass")
	assert.Same(t, ErrAuthFailed, err)

	_, err = svc.Authenticate(ctx, "", "")
	assert.Same(t, ErrAuthFailed, err)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	inactive := false
	u, err := svc.CreateUser(ctx, "sleepy@example.com", "goodpass", UserExtra{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "sleepy@example.com", "goodpass")
	assert.Same(t, ErrAuthFailed, err)

	_, err = svc.ActiveUser(ctx, u.ID)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthenticated))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "token@example.com", "goodpass", UserExtra{})
	require.NoError(t, err)

	tok, err := svc.IssueToken(u)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, tok.ExpiresIn)

	id, err := svc.ParseToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = svc.ParseToken(tok.AccessToken + "x")
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthenticated))

	other := NewAuthService(nil, []byte("another-secret-0123456789"), time.Hour)
	_, err = other.ParseToken(tok.AccessToken)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthenticated))
}

func TestParseTokenRejectsExpiredToken(t *testing.T) {
	svc := newTestAuth(t)

	past := time.Now().Add(-2 * time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
	})
	signed, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	_, err = svc.ParseToken(signed)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthenticated))
}

func TestActiveUserUnknownID(t *testing.T) {
	svc := newTestAuth(t)
	_, err := svc.ActiveUser(context.Background(), uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeUnauthenticated))
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "me@example.com", "oldpass", UserExtra{Name: "Old"})
	require.NoError(t, err)

	name := "New Name"
	password := "newpass123"
	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	_, err = svc.Authenticate(ctx, "me@example.com", "oldpass")
	assert.Same(t, ErrAuthFailed, err)
	_, err = svc.Authenticate(ctx, "me@example.com", "newpass123")
	assert.NoError(t, err)

	blank := ""
	_, err = svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Password: &blank})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestAuthenticateComparesHashEvenForUnknownEmail(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "known@example.com", "goodpass", UserExtra{})
	require.NoError(t, err)

	var compared [][]byte
	svc.compareHash = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	for _, email := range []string{"known@example.com", "unknown@example.com", "not-an-email"} {
		compared = nil
		_, err := svc.Authenticate(ctx, email, "wrongpass")
		assert.Same(t, ErrAuthFailed, err, email)
		require.Len(t, compared, 1, "%s must cost exactly one bcrypt comparison", email)
	}

	compared = nil
	_, _ = svc.Authenticate(ctx, "unknown@example.com", "wrongpass")
	require.Len(t, compared, 1)
	cost, err := bcrypt.Cost(compared[0])
	require.NoError(t, err)
	assert.Equal(t, svc.bcryptCost, cost, "dummy hash uses the configured cost")
}
