package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/observ"
	"github.com/lalith-99/vidstream/internal/repository"
)

const uniqueViolation = "23505"

// UserStore implements repository.UserRepository.
type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, email, full_name, avatar_url, cover_image_url, password_hash, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FullName,
		&u.AvatarURL,
		&u.CoverImageURL,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. Postgres generates the UUID and timestamp.
// Losing a signup race to the same username or email wraps
// repository.ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, username, email, fullName, passwordHash string) (*models.User, error) {
	defer observ.ObserveQuery("users.create", time.Now())

	query := `
		INSERT INTO users (username, email, full_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query, username, email, fullName, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("insert user %s: %w", pgErr.ConstraintName, repository.ErrDuplicate)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByID returns nil, nil when the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	defer observ.ObserveQuery("users.get_by_id", time.Now())

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsernameOrEmail backs login, where the user may type either.
// Usernames and emails are stored lowercase.
func (s *UserStore) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	defer observ.ObserveQuery("users.get_by_login", time.Now())

	query := `SELECT ` + userColumns + ` FROM users WHERE username = lower($1) OR email = lower($1)`

	u, err := scanUser(s.db.QueryRow(ctx, query, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return u, nil
}

// ExistsByUsernameOrEmail is the pre-insert signup check.
func (s *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	defer observ.ObserveQuery("users.exists", time.Now())

	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE username = lower($1) OR email = lower($2)
		)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}
