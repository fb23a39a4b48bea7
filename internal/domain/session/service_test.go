package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, accountID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, accountID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) DeleteByAccount(ctx context.Context, accountID int) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func hashOf(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	var storedHash string
	repo.On("Create", mock.Anything, 1, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).Return(nil)

	token, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NotEqual(t, token, storedHash)
	assert.Equal(t, hashOf(token), storedHash)
}

func TestService_Create_Unique(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("Create", mock.Anything, 1, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	first, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("known token resolves account", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, slog.Default())

		repo.On("Validate", mock.Anything, hashOf("sometoken")).Return(7, nil)

		accountID, err := svc.Validate(ctx, "sometoken")
		require.NoError(t, err)
		assert.Equal(t, 7, accountID)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, slog.Default())

		repo.On("Validate", mock.Anything, mock.Anything).Return(0, errors.New("no rows"))

		_, err := svc.Validate(ctx, "bogus")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestService_Revoke(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, slog.Default())

	repo.On("DeleteByAccount", mock.Anything, 3).Return(nil)

	require.NoError(t, svc.Revoke(ctx, 3))
	repo.AssertExpectations(t)
}
