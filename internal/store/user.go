package store

import (
	"context"
	"errors"
	"fmt"

	"franceguessr/internal/database"
	"franceguessr/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, hashed_password)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		u.Username,
		u.Email,
		u.HashedPassword,
	)
	if err := row.Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("CreateUser: %w: %w", ErrDuplicate, err)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, email, hashed_password
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByEmail: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// DeleteUser removes the account matching both email and hashedPassword and
// returns its username.
func DeleteUser(ctx context.Context, db database.DB, email, hashedPassword string) (string, error) {
	row := db.QueryRow(ctx,
		`DELETE FROM users
		 WHERE email = $1 AND hashed_password = $2
		 RETURNING username`,
		email,
		hashedPassword,
	)
	var username string
	if err := row.Scan(&username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("DeleteUser: %w", ErrNotFound)
		}
		return "", fmt.Errorf("DeleteUser: %w", err)
	}
	return username, nil
}
