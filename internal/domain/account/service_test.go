package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, acc *Account) (int, error) {
	args := m.Called(ctx, acc)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (Account, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(Account), args.Error(1)
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (Account, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(Account), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter string) ([]Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Account), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, acc *Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, NewValidator(), slog.Default())
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with slug from username", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "Test_User").
			Return(Account{}, ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(acc *Account) bool {
			return acc.Slug == "test_user" &&
				acc.Username == "Test_User" &&
				acc.Name == "Pat" &&
				acc.Affiliation == "ZMT" &&
				bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("s3cret-pass")) == nil
		})).Return(7, nil)

		acc, err := newTestService(repo).Register(ctx, "Test_User", "s3cret-pass", "Pat", "ZMT")

		require.NoError(t, err)
		assert.Equal(t, 7, acc.ID)
		assert.Equal(t, "test_user", acc.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("name defaults to username", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "someone").
			Return(Account{}, ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(acc *Account) bool {
			return acc.Name == "someone"
		})).Return(1, nil)

		_, err := newTestService(repo).Register(ctx, "someone", "s3cret-pass", "", "")
		require.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "taken").
			Return(Account{ID: 1, Username: "taken"}, nil)

		_, err := newTestService(repo).Register(ctx, "taken", "s3cret-pass", "", "")
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo)

		_, err := svc.Register(ctx, "ab", "s3cret-pass", "", "")
		assert.ErrorIs(t, err, ErrInvalidInput, "username too short")

		_, err = svc.Register(ctx, "valid_user", "short", "", "")
		assert.ErrorIs(t, err, ErrInvalidInput, "password too short")

		_, err = svc.Register(ctx, "no spaces allowed", "s3cret-pass", "", "")
		assert.ErrorIs(t, err, ErrInvalidInput)

		repo.AssertNotCalled(t, "Create")
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("test_password"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := Account{ID: 3, Username: "test_user", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "test_user").Return(stored, nil)

		acc, err := newTestService(repo).Authenticate(ctx, "test_user", "test_password")
		require.NoError(t, err)
		assert.Equal(t, 3, acc.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "test_user").Return(stored, nil)

		_, err := newTestService(repo).Authenticate(ctx, "test_user", "wrong")
		assert.ErrorIs(t, err, ErrInvalidAuth)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "ghost").Return(Account{}, ErrNotFound)

		_, err := newTestService(repo).Authenticate(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidAuth)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	stored := Account{ID: 3, Slug: "test_user", Username: "test_user", Name: "Old"}

	t.Run("owner updates name and affiliation", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "test_user").Return(stored, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(acc *Account) bool {
			return acc.ID == 3 && acc.Name == "New Name" && acc.Affiliation == "ZMT" &&
				acc.Slug == "test_user"
		})).Return(nil)

		acc, err := newTestService(repo).Update(ctx, 3, "test_user", Patch{Name: "New Name", Affiliation: "ZMT"})
		require.NoError(t, err)
		assert.Equal(t, "New Name", acc.Name)
	})

	t.Run("name-only patch keeps affiliation", func(t *testing.T) {
		withAffiliation := stored
		withAffiliation.Affiliation = "ZMT"

		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "test_user").Return(withAffiliation, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(acc *Account) bool {
			return acc.Name == "New Name" && acc.Affiliation == "ZMT"
		})).Return(nil)

		acc, err := newTestService(repo).Update(ctx, 3, "test_user", Patch{Name: "New Name"})
		require.NoError(t, err)
		assert.Equal(t, "ZMT", acc.Affiliation)
	})

	t.Run("affiliation-only patch keeps name", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "test_user").Return(stored, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(acc *Account) bool {
			return acc.Name == "Old" && acc.Affiliation == "ZMT"
		})).Return(nil)

		acc, err := newTestService(repo).Update(ctx, 3, "test_user", Patch{Affiliation: "ZMT"})
		require.NoError(t, err)
		assert.Equal(t, "Old", acc.Name)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "test_user").Return(stored, nil)

		_, err := newTestService(repo).Update(ctx, 99, "test_user", Patch{Name: "Hijack"})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "missing").Return(Account{}, ErrNotFound)

		_, err := newTestService(repo).Update(ctx, 3, "missing", Patch{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	stored := Account{ID: 3, Slug: "test_user"}

	t.Run("owner removes account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "test_user").Return(stored, nil)
		repo.On("Delete", mock.Anything, 3).Return(nil)

		require.NoError(t, newTestService(repo).Remove(ctx, 3, "test_user"))
		repo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindBySlug", mock.Anything, "test_user").Return(stored, nil)

		err := newTestService(repo).Remove(ctx, 4, "test_user")
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Delete")
	})
}
