package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/exp/slog"

	"github.com/spatialdatahub/spatialdatahub.com/internal/domain/keyword"
)

// Encryptor seals and opens credential values. Satisfied by
// crypto.Encryptor.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type Servicer interface {
	Create(ctx context.Context, requesterID, accountID int, input CreateInput) (Dataset, error)
	Get(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) (Dataset, error)
	ListByAccount(ctx context.Context, requesterID, accountID int, titleQuery string) ([]Dataset, error)
	UpdateDescriptive(ctx context.Context, requesterID, accountID int, datasetSlug string, id int, patch DescriptivePatch) (Dataset, error)
	UpdateCredentials(ctx context.Context, requesterID, accountID int, datasetSlug string, id int, patch CredentialPatch) (Dataset, error)
	Credentials(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) (Credentials, error)
	Remove(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) error
}

type Service struct {
	repo     Repository
	keywords keyword.Repository
	enc      Encryptor
	log      *slog.Logger
}

func NewService(repo Repository, keywords keyword.Repository, enc Encryptor, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		keywords: keywords,
		enc:      enc,
		log:      log.With("component", "dataset_service"),
	}
}

// Create persists a new dataset under accountID. The requester must be
// the account owner. The title is slugified for URLs and any submitted
// credential pair is encrypted before it reaches the repository.
func (s *Service) Create(ctx context.Context, requesterID, accountID int, input CreateInput) (Dataset, error) {
	if requesterID != accountID {
		return Dataset{}, ErrForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return Dataset{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	ds := Dataset{
		AccountID:    accountID,
		Slug:         slug.Make(input.Title),
		Title:        input.Title,
		Author:       input.Author,
		URL:          input.URL,
		SyncInstance: input.SyncInstance,
		SyncPath:     input.SyncPath,
		PublicAccess: input.PublicAccess,
		Description:  input.Description,
	}

	var err error
	if ds.CredentialUser, err = s.encryptIfSet(input.CredentialUser); err != nil {
		return Dataset{}, err
	}
	if ds.CredentialPassword, err = s.encryptIfSet(input.CredentialPassword); err != nil {
		return Dataset{}, err
	}

	id, err := s.repo.Create(ctx, &ds)
	if err != nil {
		s.log.Error("failed to create dataset", "account_id", accountID, "error", err)
		return Dataset{}, fmt.Errorf("create dataset: %w", err)
	}
	ds.ID = id

	if err := s.applyKeywords(ctx, &ds, input.Keywords); err != nil {
		return Dataset{}, err
	}

	s.log.Info("dataset created", "dataset_id", id, "account_id", accountID, "slug", ds.Slug)
	return ds, nil
}

// Get resolves the account+slug+id triple. Private datasets are
// readable by their owner only.
func (s *Service) Get(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) (Dataset, error) {
	ds, err := s.resolve(ctx, accountID, datasetSlug, id)
	if err != nil {
		return Dataset{}, err
	}

	if !ds.PublicAccess && ds.AccountID != requesterID {
		return Dataset{}, ErrForbidden
	}

	if err := s.loadKeywords(ctx, ds); err != nil {
		return Dataset{}, err
	}
	return *ds, nil
}

func (s *Service) ListByAccount(ctx context.Context, requesterID, accountID int, titleQuery string) ([]Dataset, error) {
	datasets, err := s.repo.ListByAccount(ctx, accountID, Filter{
		TitleQuery:  titleQuery,
		RequesterID: requesterID,
	})
	if err != nil {
		s.log.Error("failed to list datasets", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return datasets, nil
}

// UpdateDescriptive applies the descriptive patch only. The stored
// credential and sync columns are untouched regardless of what the
// submission carried alongside.
func (s *Service) UpdateDescriptive(ctx context.Context, requesterID, accountID int, datasetSlug string, id int, patch DescriptivePatch) (Dataset, error) {
	ds, err := s.resolveOwned(ctx, requesterID, accountID, datasetSlug, id)
	if err != nil {
		return Dataset{}, err
	}
	if strings.TrimSpace(patch.Title) == "" {
		return Dataset{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	ds.Title = patch.Title
	ds.Slug = slug.Make(patch.Title)
	ds.Author = patch.Author
	ds.URL = patch.URL
	ds.PublicAccess = patch.PublicAccess
	ds.Description = patch.Description

	if err := s.repo.UpdateDescriptive(ctx, ds); err != nil {
		s.log.Error("failed to update dataset", "dataset_id", id, "error", err)
		return Dataset{}, fmt.Errorf("update dataset: %w", err)
	}

	if err := s.applyKeywords(ctx, ds, patch.Keywords); err != nil {
		return Dataset{}, err
	}

	s.log.Info("dataset updated", "dataset_id", id, "account_id", accountID)
	return *ds, nil
}

// UpdateCredentials replaces the credential pair and sync location.
// Both values are encrypted before storage; descriptive fields are
// untouched.
func (s *Service) UpdateCredentials(ctx context.Context, requesterID, accountID int, datasetSlug string, id int, patch CredentialPatch) (Dataset, error) {
	ds, err := s.resolveOwned(ctx, requesterID, accountID, datasetSlug, id)
	if err != nil {
		return Dataset{}, err
	}

	if ds.CredentialUser, err = s.encryptIfSet(patch.User); err != nil {
		return Dataset{}, err
	}
	if ds.CredentialPassword, err = s.encryptIfSet(patch.Password); err != nil {
		return Dataset{}, err
	}
	ds.SyncInstance = patch.SyncInstance
	ds.SyncPath = patch.SyncPath

	if err := s.repo.UpdateCredentials(ctx, ds); err != nil {
		s.log.Error("failed to update dataset credentials", "dataset_id", id, "error", err)
		return Dataset{}, fmt.Errorf("update dataset credentials: %w", err)
	}

	s.log.Info("dataset credentials updated", "dataset_id", id, "account_id", accountID)
	return *ds, nil
}

// Credentials decrypts the stored pair for the owner's maintenance
// view. This is the only reachable decryption path.
func (s *Service) Credentials(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) (Credentials, error) {
	ds, err := s.resolveOwned(ctx, requesterID, accountID, datasetSlug, id)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{
		SyncInstance: ds.SyncInstance,
		SyncPath:     ds.SyncPath,
	}
	if ds.CredentialUser != "" {
		if creds.User, err = s.enc.Decrypt(ds.CredentialUser); err != nil {
			return Credentials{}, fmt.Errorf("decrypt credential user: %w", err)
		}
	}
	if ds.CredentialPassword != "" {
		if creds.Password, err = s.enc.Decrypt(ds.CredentialPassword); err != nil {
			return Credentials{}, fmt.Errorf("decrypt credential password: %w", err)
		}
	}
	return creds, nil
}

// Remove deletes exactly one dataset. Sibling datasets and shared
// keywords are unaffected.
func (s *Service) Remove(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) error {
	ds, err := s.resolveOwned(ctx, requesterID, accountID, datasetSlug, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ds.ID); err != nil {
		s.log.Error("failed to delete dataset", "dataset_id", id, "error", err)
		return fmt.Errorf("delete dataset: %w", err)
	}

	s.log.Info("dataset removed", "dataset_id", id, "account_id", accountID)
	return nil
}

// resolve loads the dataset and verifies it belongs to the account and
// slug named in the URL. A mismatch is indistinguishable from a missing
// record.
func (s *Service) resolve(ctx context.Context, accountID int, datasetSlug string, id int) (*Dataset, error) {
	ds, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get dataset", "dataset_id", id, "error", err)
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	if ds.AccountID != accountID || ds.Slug != datasetSlug {
		return nil, ErrNotFound
	}
	return ds, nil
}

func (s *Service) resolveOwned(ctx context.Context, requesterID, accountID int, datasetSlug string, id int) (*Dataset, error) {
	ds, err := s.resolve(ctx, accountID, datasetSlug, id)
	if err != nil {
		return nil, err
	}
	if ds.AccountID != requesterID {
		return nil, ErrForbidden
	}
	return ds, nil
}

func (s *Service) encryptIfSet(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	ciphertext, err := s.enc.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt credential: %w", err)
	}
	return ciphertext, nil
}

func (s *Service) applyKeywords(ctx context.Context, ds *Dataset, names []string) error {
	if names == nil {
		return nil
	}

	kws, err := s.keywords.EnsureAll(ctx, names)
	if err != nil {
		return fmt.Errorf("ensure keywords: %w", err)
	}

	ids := make([]int, len(kws))
	resolved := make([]string, len(kws))
	for i, kw := range kws {
		ids[i] = kw.ID
		resolved[i] = kw.Name
	}

	if err := s.repo.SetKeywords(ctx, ds.ID, ids); err != nil {
		return fmt.Errorf("set keywords: %w", err)
	}
	ds.Keywords = resolved
	return nil
}

func (s *Service) loadKeywords(ctx context.Context, ds *Dataset) error {
	kws, err := s.keywords.ListByDataset(ctx, ds.ID)
	if err != nil {
		return fmt.Errorf("load keywords: %w", err)
	}
	names := make([]string, len(kws))
	for i, kw := range kws {
		names[i] = kw.Name
	}
	ds.Keywords = names
	return nil
}
