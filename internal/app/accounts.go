package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"resort_booking/internal/clock"
	"resort_booking/internal/domain"
)

type AccountService struct {
	repo  domain.AccountRepository
	clock clock.Clock
	cost  int
}

func NewAccountService(r domain.AccountRepository, clk clock.Clock) *AccountService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &AccountService{repo: r, clock: clk, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func (s *AccountService) WithHashCost(cost int) *AccountService {
	s.cost = cost
	return s
}

// bcrypt only hashes the first 72 bytes and refuses longer input.
const maxPasswordBytes = 72

func validateCredentials(ie *domain.InputError, email, password string) {
	if _, err := mail.ParseAddress(email); err != nil {
		ie.Add("email", "provide a valid email")
	}
	switch {
	case password == "":
		ie.Add("password", "required")
	case len(password) > maxPasswordBytes:
		ie.Add("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
}

func (s *AccountService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		ie := domain.NewInputError()
		ie.Add("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
		return "", ie
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// SignupCustomer creates the user and its customer record together and returns the user id.
func (s *AccountService) SignupCustomer(ctx context.Context, in domain.CustomerSignup) (int64, error) {
	in.Email = strings.TrimSpace(in.Email)
	ie := domain.NewInputError()
	validateCredentials(ie, in.Email, in.Password)
	if strings.TrimSpace(in.FirstName) == "" {
		ie.Add("first_name", "required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		ie.Add("last_name", "required")
	}
	if err := ie.OrNil(); err != nil {
		return 0, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	userID, err := s.repo.CreateCustomerAccount(ctx,
		domain.User{Email: in.Email, PasswordHash: hash, Role: domain.RoleCustomer, LastLoggedIn: &now},
		domain.Customer{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone},
	)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("user_id", userID).Msg("customer signed up")
	return userID, nil
}

// SignupStaff creates a management-portal user.
func (s *AccountService) SignupStaff(ctx context.Context, email, password string) (int64, error) {
	email = strings.TrimSpace(email)
	ie := domain.NewInputError()
	validateCredentials(ie, email, password)
	if err := ie.OrNil(); err != nil {
		return 0, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	id, err := s.repo.CreateUser(ctx, domain.User{Email: email, PasswordHash: hash, Role: domain.RoleAdmin, LastLoggedIn: &now})
	if err != nil {
		return 0, err
	}
	log.Info().Int64("user_id", id).Msg("staff signed up")
	return id, nil
}

// Login checks the password of the user with email and role and returns its id.
func (s *AccountService) Login(ctx context.Context, email, password string, role domain.Role) (int64, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email), role)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, domain.ErrInvalidCredentials
	}
	if err != nil {
		return 0, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return 0, domain.ErrInvalidCredentials
	}
	if err := s.repo.TouchLastLoggedIn(ctx, u.ID, s.clock.Now()); err != nil {
		return 0, fmt.Errorf("update last login: %w", err)
	}
	return u.ID, nil
}

// ResolveCustomer maps an authenticated user id onto its customer id.
func (s *AccountService) ResolveCustomer(ctx context.Context, userID int64) (int64, error) {
	id, err := s.repo.GetCustomerIDByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, domain.ErrReferentialIntegrity
	}
	return id, err
}
