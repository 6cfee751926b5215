package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/cryptox"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/aussiebroadwan/orgflow/pkg/jwtx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// Session is the result of a successful login.
type Session struct {
	User        domain.User
	AccessToken string
	ExpiresAt   time.Time
}

type UserService struct {
	Store     store.Store
	Hasher    *cryptox.PasswordHasher
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// validEmail accepts a bare address only, no display name or padding.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register creates an account. Emails are stored exactly as given.
func (s *UserService) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	if !validEmail(email) {
		return domain.User{}, domain.Errorf(domain.ErrInvalid, "invalid email %q", email)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, domain.Errorf(domain.ErrInvalid, "name is required")
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, domain.Errorf(domain.ErrInvalid, "password must be at least %d characters", MinPasswordLength)
	}

	// 2. Hash and persist
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	users := s.Store.Users()
	if err := users.CreateUser(ctx, u); err != nil {
		return domain.User{}, writeErr(err, "email is already registered", nil)
	}

	log.Info("user registered", slog.String("user_id", u.ID))

	created, err := users.GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, lookupErr(err, "user")
	}
	return created, nil
}

// Login verifies the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, domain.ErrUnauthenticated
		}
		return Session{}, domain.StoreError("get user by email", err)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("failed to verify password", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		return Session{}, domain.ErrUnauthenticated
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(u.ID, u.Email, u.Name, s.Issuer, ttl, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return Session{}, err
	}

	log.Info("user logged in", slog.String("user_id", u.ID))
	return Session{User: u, AccessToken: token, ExpiresAt: now.Add(ttl)}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, lookupErr(err, "user")
	}
	return u, nil
}
