package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects anything longer.
	maxPasswordLength = 72
	maxUsernameLength = 50
)

type TokenIssuer interface {
	Issue(username, role string) (string, error)
}

type AuthService struct {
	db     *sql.DB
	tokens TokenIssuer
}

func NewAuthService(db *sql.DB, tokens TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates the user and an empty profile in one transaction.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	const op = "auth.Register"

	username := strings.TrimSpace(req.Username)
	switch {
	case username == "":
		return nil, apperr.BadRequestf(op, "username is required")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return nil, apperr.BadRequestf(op, "username must be at most %d characters", maxUsernameLength)
	case len(req.Password) < minPasswordLength:
		return nil, apperr.BadRequestf(op, "password must be at least %d characters", minPasswordLength)
	case len(req.Password) > maxPasswordLength:
		return nil, apperr.BadRequestf(op, "password must be at most %d bytes", maxPasswordLength)
	case req.Password != req.ConfirmPassword:
		return nil, apperr.BadRequestf(op, "passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(op, "unable to register user", err)
	}

	var user *models.User
	err = database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		created, err := store.CreateUser(ctx, tx, username, string(hash), models.RoleUser)
		if err != nil {
			return err
		}
		if err := store.CreateProfile(ctx, tx, models.Profile{UserID: created.ID}); err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return nil, apperr.E(op, apperr.Conflict, "user already exists", err)
		}
		return nil, apperr.Wrap(op, "unable to register user", err)
	}

	return user, nil
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "auth.Login"

	user, err := store.GetUserByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperr.E(op, apperr.Unauthorized, "invalid username or password", err)
		}
		return nil, apperr.Wrap(op, "unable to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apperr.E(op, apperr.Unauthorized, "invalid username or password", err)
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, apperr.Wrap(op, "unable to log in", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
