package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"bookworm/internal/domain"
	"bookworm/internal/repos"
	"bookworm/internal/validate"
)

type UserStore interface {
	Insert(ctx context.Context, u *domain.User) (bool, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Tokens interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
}

type AuthService struct {
	Users  UserStore
	Tokens Tokens
	Cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users UserStore, tokens Tokens, cost int) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	s := &AuthService{Users: users, Tokens: tokens, Cost: cost}
	s.dummy()
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Cart     []domain.CartLine
}

// Register creates a user. At most one of several concurrent registrations for the same
// email succeeds; the rest get ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return nil, invalid("name", "must be 1-50 characters")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, invalid("email", "malformed email address")
	}
	if !validate.Password(in.Password) {
		return nil, invalid("password", "must be 8-72 characters with upper, lower, digit and symbol")
	}
	if err := checkCartLines(in.Cart); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	cart := in.Cart
	if cart == nil {
		cart = []domain.CartLine{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Email: email, Name: name, Hash: string(hash), CartJSON: string(cartJSON)}
	created, err := s.Users.Insert(ctx, u)
	if err != nil {
		return nil, unavailable("register", err)
	}
	if !created {
		return nil, ErrDuplicateEmail
	}
	return u, nil
}

// Authenticate checks a password. Unknown emails and wrong passwords are the same error,
// and both pay for one bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email, _ = validate.Email(email)
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, unavailable("authenticate", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, unavailable("find user", err)
	}
	return u, nil
}

// Login authenticates and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	tok, err := s.Tokens.Issue(u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) IssueToken(email string) (string, error) { return s.Tokens.Issue(email) }

// Identify resolves a bearer token to an existing user.
func (s *AuthService) Identify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	email, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.FindByEmail(ctx, email)
}

// Logout has nothing to revoke: tokens are stateless and dropped by the client.
func (s *AuthService) Logout(context.Context) error { return nil }

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bookworm-dummy-password"), s.Cost)
	})
	return s.dummyHash
}

func checkCartLines(lines []domain.CartLine) error {
	for i := range lines {
		id, ok := validate.ID(lines[i].ItemID)
		if !ok {
			return invalid("cart", fmt.Sprintf("line %d: malformed item id", i))
		}
		if !validate.Qty(lines[i].Quantity) {
			return invalid("cart", fmt.Sprintf("line %d: quantity must be 1-%d", i, validate.MaxCartQty))
		}
		lines[i].ItemID = id
	}
	return nil
}
