package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags and never expose the password hash.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique display name, 2 to 50 characters.
//  Email        – unique email address, stored lower-cased.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  IsAdmin      – whether the account has administrative rights.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role returns the role string embedded in issued tokens.  Only two roles
// exist: "admin" and "user".
func (u User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}
