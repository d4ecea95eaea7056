package db

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Spok95/attendance-tracker/internal/apperr"
	"github.com/Spok95/attendance-tracker/internal/ctxutil"
	"github.com/Spok95/attendance-tracker/internal/models"
)

// ErrInvalidCredentials is returned for both unknown username and wrong
// password so login responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid username or password")

func CreateAdmin(ctx context.Context, database *sql.DB, username, password string) (*models.User, error) {
	if username == "" {
		return nil, apperr.Validation("username", "username is required")
	}
	if len(password) < 6 {
		return nil, apperr.Validation("password", "password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	u := models.User{Username: username, PasswordHash: string(hash), IsAdmin: true}
	err = database.QueryRowContext(ctx, `
INSERT INTO users (username, password_hash, is_admin)
VALUES ($1, $2, TRUE)
RETURNING id, created_at`,
		u.Username, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperr.ConflictError{Field: "username", Value: username}
		}
		return nil, err
	}
	return &u, nil
}

func GetUserByUsername(ctx context.Context, database *sql.DB, username string) (*models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var u models.User
	err := database.QueryRowContext(ctx, `
SELECT id, username, password_hash, is_admin, created_at
FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies the password against the stored bcrypt hash.
func Authenticate(ctx context.Context, database *sql.DB, username, password string) (*models.User, error) {
	u, err := GetUserByUsername(ctx, database, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
