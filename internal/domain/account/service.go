package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, username, password, name, affiliation string) (Account, error)
	Authenticate(ctx context.Context, username, password string) (Account, error)
	List(ctx context.Context, query string) ([]Account, error)
	GetBySlug(ctx context.Context, slug string) (Account, error)
	Update(ctx context.Context, requesterID int, accountSlug string, patch Patch) (Account, error)
	Remove(ctx context.Context, requesterID int, accountSlug string) error
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "account_service"),
	}
}

// Register creates the login identity and its account in one step. The
// account slug is derived from the username and is used in all URLs.
func (s *Service) Register(ctx context.Context, username, password, name, affiliation string) (Account, error) {
	if err := s.validator.ValidateRegister(username, password); err != nil {
		s.log.Debug("registration validation failed", "username", username, "error", err)
		return Account{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return Account{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	if name == "" {
		name = username
	}

	acc := Account{
		Slug:         slug.Make(username),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Affiliation:  affiliation,
	}

	id, err := s.repo.Create(ctx, &acc)
	if err != nil {
		s.log.Error("failed to create account", "username", username, "error", err)
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	acc.ID = id

	s.log.Info("account registered", "account_id", id, "slug", acc.Slug)
	return acc, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (Account, error) {
	if err := s.validator.ValidateLogin(username); err != nil {
		return Account{}, ErrInvalidAuth
	}

	acc, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return Account{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidAuth
	}

	return acc, nil
}

func (s *Service) List(ctx context.Context, query string) ([]Account, error) {
	accounts, err := s.repo.List(ctx, query)
	if err != nil {
		s.log.Error("failed to list accounts", "error", err)
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) GetBySlug(ctx context.Context, accountSlug string) (Account, error) {
	acc, err := s.repo.FindBySlug(ctx, accountSlug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrNotFound
		}
		s.log.Error("failed to find account", "slug", accountSlug, "error", err)
		return Account{}, fmt.Errorf("find account: %w", err)
	}
	return acc, nil
}

// Update applies the self-service patch. Only the owner may edit the
// account; slug and username are immutable.
func (s *Service) Update(ctx context.Context, requesterID int, accountSlug string, patch Patch) (Account, error) {
	acc, err := s.GetBySlug(ctx, accountSlug)
	if err != nil {
		return Account{}, err
	}

	if acc.ID != requesterID {
		return Account{}, ErrForbidden
	}

	// Empty patch fields leave the stored values untouched, so a
	// name-only edit cannot clear the affiliation.
	if patch.Name != "" {
		acc.Name = patch.Name
	}
	if patch.Affiliation != "" {
		acc.Affiliation = patch.Affiliation
	}

	if err := s.repo.Update(ctx, &acc); err != nil {
		s.log.Error("failed to update account", "account_id", acc.ID, "error", err)
		return Account{}, fmt.Errorf("update account: %w", err)
	}

	s.log.Info("account updated", "account_id", acc.ID)
	return acc, nil
}

// Remove deletes the account and, through the schema, every dataset it
// owns.
func (s *Service) Remove(ctx context.Context, requesterID int, accountSlug string) error {
	acc, err := s.GetBySlug(ctx, accountSlug)
	if err != nil {
		return err
	}

	if acc.ID != requesterID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, acc.ID); err != nil {
		s.log.Error("failed to delete account", "account_id", acc.ID, "error", err)
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info("account removed", "account_id", acc.ID)
	return nil
}
