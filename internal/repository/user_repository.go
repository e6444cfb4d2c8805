package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/seatdesk/seat-reservation/internal/model"
)

// UserRepo provides access to the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id, username, email, password_hash, is_active, is_admin, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user with an already-hashed password and returns its ID.
// Email is normalized to lower case.  A duplicate username or email yields
// ErrConflict.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, passwordHash)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1", username))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// List returns users with optional filters: q matches username or email as
// a substring, role filters admins vs regular users, active filters on the
// is_active flag.  Results are paginated with skip and limit.
func (r *UserRepo) List(ctx context.Context, q, role string, active *bool, skip, limit int) ([]model.User, error) {
	query := "SELECT " + userCols + " FROM users WHERE 1=1"
	var args []any
	if q != "" {
		query += " AND (username LIKE ? OR email LIKE ?)"
		pat := "%" + q + "%"
		args = append(args, pat, pat)
	}
	switch role {
	case "admin":
		query += " AND is_admin = 1"
	case "user":
		query += " AND is_admin = 0"
	}
	if active != nil {
		query += " AND is_active = ?"
		args = append(args, *active)
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies a sparse field map to a user.  Recognized keys:
// username, email, password_hash, is_active, is_admin.
func (r *UserRepo) Update(ctx context.Context, id uint64, fields map[string]any) (model.User, error) {
	query, args, ok := buildUpdate("users", fields,
		[]string{"username", "email", "password_hash", "is_active", "is_admin"}, id)
	if ok {
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			if isDuplicate(err) {
				return model.User{}, ErrConflict
			}
			return model.User{}, err
		}
	}
	// Read back the row; a missing id surfaces as ErrNotFound here, which
	// also covers updates whose WHERE matched nothing.
	return r.GetByID(ctx, id)
}

// Delete removes a user permanently.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
