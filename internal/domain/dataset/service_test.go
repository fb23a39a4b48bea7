package dataset

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/crypto"
	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/keyword"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, ds *Dataset) (int, error) {
	args := m.Called(ctx, ds)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id int) (*Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Dataset), args.Error(1)
}

func (m *MockRepository) ListByAccount(ctx context.Context, accountID int, filter Filter) ([]Dataset, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]Dataset), args.Error(1)
}

func (m *MockRepository) UpdateDescriptive(ctx context.Context, ds *Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *MockRepository) UpdateCredentials(ctx context.Context, ds *Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetKeywords(ctx context.Context, datasetID int, keywordIDs []int) error {
	args := m.Called(ctx, datasetID, keywordIDs)
	return args.Error(0)
}

type MockKeywords struct {
	mock.Mock
}

func (m *MockKeywords) EnsureAll(ctx context.Context, names []string) ([]keyword.Keyword, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]keyword.Keyword), args.Error(1)
}

func (m *MockKeywords) ListByDataset(ctx context.Context, datasetID int) ([]keyword.Keyword, error) {
	args := m.Called(ctx, datasetID)
	return args.Get(0).([]keyword.Keyword), args.Error(1)
}

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestService(t *testing.T, repo Repository, kw keyword.Repository) (*Service, *crypto.Encryptor) {
	t.Helper()
	enc, err := crypto.NewEncryptor(testKey)
	require.NoError(t, err)
	return NewService(repo, kw, enc, slog.Default()), enc
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	const ownerID = 1

	t.Run("slugifies title and encrypts credentials", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(ds *Dataset) bool {
			return ds.Slug == "password-protected-dataset" &&
				ds.AccountID == ownerID &&
				ds.CredentialUser != "zmtdummy" &&
				ds.CredentialPassword != "zmtBremen1991" &&
				ds.CredentialUser != "" && ds.CredentialPassword != ""
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Dataset).ID = 42
		}).Return(42, nil)

		ds, err := svc.Create(ctx, ownerID, ownerID, CreateInput{
			Title:              "Password Protected Dataset",
			Author:             "ZMT Dummy",
			URL:                "https://example.org/data.json",
			PublicAccess:       true,
			CredentialUser:     "zmtdummy",
			CredentialPassword: "zmtBremen1991",
		})

		require.NoError(t, err)
		assert.Equal(t, 42, ds.ID)

		user, err := enc.Decrypt(ds.CredentialUser)
		require.NoError(t, err)
		assert.Equal(t, "zmtdummy", user)

		password, err := enc.Decrypt(ds.CredentialPassword)
		require.NoError(t, err)
		assert.Equal(t, "zmtBremen1991", password)
	})

	t.Run("detail path follows account and title slugs", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, _ := newTestService(t, repo, kw)

		repo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*Dataset).ID = 13
			}).Return(13, nil)

		ds, err := svc.Create(ctx, ownerID, ownerID, CreateInput{Title: "test dataset"})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("/test_user/test-dataset/%d/", ds.ID), ds.DetailPath("test_user"))
	})

	t.Run("empty credentials stay empty", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, _ := newTestService(t, repo, kw)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(ds *Dataset) bool {
			return ds.CredentialUser == "" && ds.CredentialPassword == ""
		})).Return(1, nil)

		_, err := svc.Create(ctx, ownerID, ownerID, CreateInput{Title: "open data"})
		require.NoError(t, err)
	})

	t.Run("attaches keywords", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, _ := newTestService(t, repo, kw)

		repo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*Dataset).ID = 5
			}).Return(5, nil)
		kw.On("EnsureAll", mock.Anything, []string{"ocean", "coral"}).
			Return([]keyword.Keyword{{ID: 1, Name: "ocean"}, {ID: 2, Name: "coral"}}, nil)
		repo.On("SetKeywords", mock.Anything, 5, []int{1, 2}).Return(nil)

		ds, err := svc.Create(ctx, ownerID, ownerID, CreateInput{
			Title:    "reef survey",
			Keywords: []string{"ocean", "coral"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"ocean", "coral"}, ds.Keywords)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, _ := newTestService(t, repo, kw)

		_, err := svc.Create(ctx, 2, ownerID, CreateInput{Title: "not mine"})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("title is required", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, _ := newTestService(t, repo, kw)

		_, err := svc.Create(ctx, ownerID, ownerID, CreateInput{Title: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func storedDataset(t *testing.T, enc *crypto.Encryptor) *Dataset {
	t.Helper()
	user, err := enc.Encrypt("zmtdummy")
	require.NoError(t, err)
	password, err := enc.Encrypt("zmtBremen1991")
	require.NoError(t, err)

	return &Dataset{
		ID:                 42,
		AccountID:          1,
		Slug:               "password-protected-dataset",
		Title:              "Password Protected Dataset",
		Author:             "ZMT Dummy",
		URL:                "https://example.org/data.json",
		PublicAccess:       true,
		Description:        "it is protected",
		CredentialUser:     user,
		CredentialPassword: password,
	}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("public dataset readable by anyone", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)
		stored := storedDataset(t, enc)

		repo.On("Get", mock.Anything, 42).Return(stored, nil)
		kw.On("ListByDataset", mock.Anything, 42).Return([]keyword.Keyword{}, nil)

		ds, err := svc.Get(ctx, 0, 1, "password-protected-dataset", 42)
		require.NoError(t, err)
		assert.Equal(t, "Password Protected Dataset", ds.Title)
	})

	t.Run("private dataset hidden from non-owner", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)
		stored := storedDataset(t, enc)
		stored.PublicAccess = false

		repo.On("Get", mock.Anything, 42).Return(stored, nil)

		_, err := svc.Get(ctx, 0, 1, "password-protected-dataset", 42)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = svc.Get(ctx, 99, 1, "password-protected-dataset", 42)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("slug mismatch reads as missing", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		_, err := svc.Get(ctx, 1, 1, "some-other-slug", 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong account reads as missing", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		_, err := svc.Get(ctx, 2, 2, "password-protected-dataset", 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_UpdateDescriptive(t *testing.T) {
	ctx := context.Background()

	t.Run("updates descriptive fields and leaves credentials alone", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)
		stored := storedDataset(t, enc)
		originalUser := stored.CredentialUser
		originalPassword := stored.CredentialPassword

		repo.On("Get", mock.Anything, 42).Return(stored, nil)
		repo.On("UpdateDescriptive", mock.Anything, mock.MatchedBy(func(ds *Dataset) bool {
			return ds.Title == "test dataset" &&
				ds.Slug == "test-dataset" &&
				ds.CredentialUser == originalUser &&
				ds.CredentialPassword == originalPassword
		})).Return(nil)

		ds, err := svc.UpdateDescriptive(ctx, 1, 1, "password-protected-dataset", 42, DescriptivePatch{
			Title:       "test dataset",
			Author:      "pat",
			URL:         "https://duckduckgo.com/",
			Description: "This is a test dataset",
		})
		require.NoError(t, err)

		user, err := enc.Decrypt(ds.CredentialUser)
		require.NoError(t, err)
		assert.Equal(t, "zmtdummy", user)

		password, err := enc.Decrypt(ds.CredentialPassword)
		require.NoError(t, err)
		assert.Equal(t, "zmtBremen1991", password)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		_, err := svc.UpdateDescriptive(ctx, 99, 1, "password-protected-dataset", 42, DescriptivePatch{Title: "x"})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "UpdateDescriptive")
	})
}

func TestService_UpdateCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("encrypts new pair and leaves descriptive fields alone", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)
		stored := storedDataset(t, enc)

		repo.On("Get", mock.Anything, 42).Return(stored, nil)
		repo.On("UpdateCredentials", mock.Anything, mock.MatchedBy(func(ds *Dataset) bool {
			return ds.Title == "Password Protected Dataset" &&
				ds.Slug == "password-protected-dataset" &&
				ds.CredentialUser != "differentUser" &&
				ds.CredentialPassword != "differentPassword"
		})).Return(nil)

		ds, err := svc.UpdateCredentials(ctx, 1, 1, "password-protected-dataset", 42, CredentialPatch{
			User:         "differentUser",
			Password:     "differentPassword",
			SyncInstance: "https://cloud.example.org",
			SyncPath:     "/data/reef",
		})
		require.NoError(t, err)

		user, err := enc.Decrypt(ds.CredentialUser)
		require.NoError(t, err)
		assert.Equal(t, "differentUser", user)

		password, err := enc.Decrypt(ds.CredentialPassword)
		require.NoError(t, err)
		assert.Equal(t, "differentPassword", password)

		assert.Equal(t, "Password Protected Dataset", ds.Title)
		assert.Equal(t, "ZMT Dummy", ds.Author)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		_, err := svc.UpdateCredentials(ctx, 99, 1, "password-protected-dataset", 42, CredentialPatch{})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "UpdateCredentials")
	})
}

func TestService_Credentials(t *testing.T) {
	ctx := context.Background()

	t.Run("owner reads decrypted pair", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		creds, err := svc.Credentials(ctx, 1, 1, "password-protected-dataset", 42)
		require.NoError(t, err)
		assert.Equal(t, "zmtdummy", creds.User)
		assert.Equal(t, "zmtBremen1991", creds.Password)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		_, err := svc.Credentials(ctx, 99, 1, "password-protected-dataset", 42)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("owner removes exactly one dataset", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)
		repo.On("Delete", mock.Anything, 42).Return(nil)

		require.NoError(t, svc.Remove(ctx, 1, 1, "password-protected-dataset", 42))
		repo.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		kw := new(MockKeywords)
		svc, enc := newTestService(t, repo, kw)

		repo.On("Get", mock.Anything, 42).Return(storedDataset(t, enc), nil)

		err := svc.Remove(ctx, 99, 1, "password-protected-dataset", 42)
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestService_ListByAccount(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	kw := new(MockKeywords)
	svc, _ := newTestService(t, repo, kw)

	expected := []Dataset{{ID: 1, Title: "Google GeoJSON Example"}}
	repo.On("ListByAccount", mock.Anything, 1, Filter{TitleQuery: "goo", RequesterID: 7}).
		Return(expected, nil)

	list, err := svc.ListByAccount(ctx, 7, 1, "goo")
	require.NoError(t, err)
	assert.Equal(t, expected, list)
	repo.AssertExpectations(t)
}
