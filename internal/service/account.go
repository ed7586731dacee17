package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	AdminLogin(email, password string) (string, error)
	Profile(ctx context.Context, accountID string) (*model.Account, error)
	UpdateProfile(ctx context.Context, accountID string, input UpdateProfileInput) error
}

type AuthResult struct {
	Token   string
	Account *model.Account
}

type UpdateProfileInput struct {
	Name  string
	Email string
	Image io.Reader // optional
}

type AdminCredentials struct {
	Email    string
	Password string
}

type accountServiceImpl struct {
	accountRepo repository.AccountRepository
	tokens      *auth.TokenManager
	uploader    client.ImageUploader
	admin       AdminCredentials
	validate    *validator.Validate
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	tokens *auth.TokenManager,
	uploader client.ImageUploader,
	admin AdminCredentials,
) AccountService {
	return &accountServiceImpl{
		accountRepo: accountRepo,
		tokens:      tokens,
		uploader:    uploader,
		admin:       admin,
		validate:    validator.New(),
	}
}

func (s *accountServiceImpl) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, model.Invalid("Invalid email")
	}
	if len(password) < minPasswordLength {
		return nil, model.Invalid("Password must be at least 8 characters")
	}

	_, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	account := &model.Account{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Cart:      model.Cart{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.authResult(account)
}

func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.authResult(account)
}

func (s *accountServiceImpl) AdminLogin(email, password string) (string, error) {
	if s.admin.Email == "" || s.admin.Password == "" {
		return "", model.ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !emailOK || !passwordOK {
		return "", model.ErrInvalidCredentials
	}

	return s.tokens.IssueAdmin(s.admin.Email)
}

func (s *accountServiceImpl) Profile(ctx context.Context, accountID string) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return account, nil
}

func (s *accountServiceImpl) UpdateProfile(ctx context.Context, accountID string, input UpdateProfileInput) error {
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" {
		return model.Invalid("Name is required")
	}
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return model.Invalid("Invalid email")
	}

	update := repository.ProfileUpdate{Name: input.Name, Email: input.Email}
	if input.Image != nil {
		if s.uploader == nil {
			return model.Invalid("Image upload is not available")
		}
		url, err := s.uploader.UploadProfileImage(ctx, input.Image)
		if err != nil {
			return fmt.Errorf("upload profile image: %w", err)
		}
		update.Image = url
	}

	if err := s.accountRepo.UpdateProfile(ctx, accountID, update); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *accountServiceImpl) authResult(account *model.Account) (*AuthResult, error) {
	token, err := s.tokens.IssueAccount(account.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Account: account}, nil
}
