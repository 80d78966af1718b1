package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seekers/internal/domain"
)

func newAuthService(userRepo *fakeUserRepo, hasher *fakePasswordHasher, verifier *fakeGoogleVerifier, email *fakeEmailService) domain.AuthService {
	var emailService domain.EmailService
	if email != nil {
		emailService = email
	}
	return NewAuthService(userRepo, hasher, &fakeTokenIssuer{}, verifier, emailService, time.Hour, discardLogger())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*fakeUserRepo)
		wantErr  error
		errMsg   string
	}{
		{
			name:     "success",
			email:    "alice@example.com",
			password: "password8",
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "password8",
			errMsg:   "invalid email",
		},
		{
			name:     "short password",
			email:    "alice@example.com",
			password: "short",
			errMsg:   "at least",
		},
		{
			name:     "duplicate email",
			email:    "taken@example.com",
			password: "password8",
			setup: func(f *fakeUserRepo) {
				f.add(&domain.User{ID: "u1", Email: "taken@example.com"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := newFakeUserRepo()
			if tt.setup != nil {
				tt.setup(userRepo)
			}
			email := &fakeEmailService{}
			svc := newAuthService(userRepo, &fakePasswordHasher{salt: "s", hash: "h"}, &fakeGoogleVerifier{}, email)

			token, user, err := svc.Register(ctx, "Alice", tt.email, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.email, user.Email)
			assert.Equal(t, "h", user.PasswordHash)
			assert.Equal(t, "s", user.Salt)
			assert.Equal(t, []string{tt.email}, email.welcomes)
		})
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo, &fakePasswordHasher{salt: "s"}, &fakeGoogleVerifier{}, nil)

	_, user, err := svc.Register(context.Background(), "Alice", "  ALICE@Example.COM ", "password8")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	userRepo.add(&domain.User{ID: "u1", Email: "login@example.com", PasswordHash: "h", Salt: "s"})
	userRepo.add(&domain.User{ID: "u2", Email: "google-only@example.com", GoogleID: "sub-2"})

	svc := newAuthService(userRepo, &fakePasswordHasher{salt: "s", hash: "h"}, &fakeGoogleVerifier{}, nil)

	token, user, err := svc.Login(ctx, "login@example.com", "anypassword")
	require.NoError(t, err)
	assert.Equal(t, "token-u1", token)
	assert.Equal(t, "u1", user.ID)

	_, _, err = svc.Login(ctx, "missing@example.com", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// An account created via Google sign-in has no password to check.
	_, _, err = svc.Login(ctx, "google-only@example.com", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_GoogleSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("existing google account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.add(&domain.User{ID: "u1", Email: "g@example.com", GoogleID: "sub-1"})
		verifier := &fakeGoogleVerifier{identity: &domain.GoogleIdentity{Subject: "sub-1", Email: "g@example.com", Name: "G"}}
		svc := newAuthService(userRepo, &fakePasswordHasher{}, verifier, nil)

		token, user, err := svc.GoogleSignIn(ctx, "credential")
		require.NoError(t, err)
		assert.Equal(t, "token-u1", token)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("links existing email account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		userRepo.add(&domain.User{ID: "u1", Email: "link@example.com", PasswordHash: "h", Salt: "s"})
		verifier := &fakeGoogleVerifier{identity: &domain.GoogleIdentity{Subject: "sub-9", Email: "link@example.com", Name: "L"}}
		svc := newAuthService(userRepo, &fakePasswordHasher{}, verifier, nil)

		_, user, err := svc.GoogleSignIn(ctx, "credential")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "sub-9", user.GoogleID)
	})

	t.Run("creates new account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		verifier := &fakeGoogleVerifier{identity: &domain.GoogleIdentity{Subject: "sub-3", Email: "new@example.com", Name: "New User"}}
		email := &fakeEmailService{}
		svc := newAuthService(userRepo, &fakePasswordHasher{}, verifier, email)

		_, user, err := svc.GoogleSignIn(ctx, "credential")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "New User", user.Name)
		assert.Equal(t, "sub-3", user.GoogleID)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, []string{"new@example.com"}, email.welcomes)
	})

	t.Run("rejects bad credential", func(t *testing.T) {
		verifier := &fakeGoogleVerifier{err: assert.AnError}
		svc := newAuthService(newFakeUserRepo(), &fakePasswordHasher{}, verifier, nil)

		_, _, err := svc.GoogleSignIn(ctx, "bad")
		require.Error(t, err)
	})
}
