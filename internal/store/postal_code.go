package store

import (
	"context"
	"errors"
	"fmt"

	"franceguessr/internal/database"
	"franceguessr/internal/model"

	"github.com/jackc/pgx/v5"
)

var postalCodeColumns = []string{"insee_code", "postal_code", "city"}

// GetPostalCodeByInseeCode returns the first row (lowest id) for code.
func GetPostalCodeByInseeCode(ctx context.Context, db database.DB, code string) (*model.PostalCode, error) {
	row := db.QueryRow(ctx,
		`SELECT id, insee_code, postal_code, city
		 FROM postal_codes WHERE insee_code = $1
		 ORDER BY id LIMIT 1`,
		code,
	)
	p := &model.PostalCode{}
	if err := scanPostalCode(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetPostalCodeByInseeCode: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetPostalCodeByInseeCode: %w", err)
	}
	return p, nil
}

// ListPostalCodesByPrefix returns every row whose insee_code starts with
// prefix, in no particular order. It never returns a nil slice on success.
func ListPostalCodesByPrefix(ctx context.Context, db database.DB, prefix string) ([]model.PostalCode, error) {
	rows, err := db.Query(ctx,
		`SELECT id, insee_code, postal_code, city
		 FROM postal_codes WHERE insee_code LIKE $1`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("ListPostalCodesByPrefix: %w", err)
	}
	defer rows.Close()

	list := []model.PostalCode{}
	for rows.Next() {
		var p model.PostalCode
		if err := scanPostalCode(rows, &p); err != nil {
			return nil, fmt.Errorf("ListPostalCodesByPrefix: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPostalCodesByPrefix: %w", err)
	}
	return list, nil
}

// ReplacePostalCodes empties postal_codes and loads codes in one
// transaction. Nothing is visible to other sessions until the commit.
func ReplacePostalCodes(ctx context.Context, db database.DB, codes []model.PostalCode) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ReplacePostalCodes: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE postal_codes RESTART IDENTITY`); err != nil {
		return 0, fmt.Errorf("ReplacePostalCodes: truncate: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"postal_codes"},
		postalCodeColumns,
		pgx.CopyFromSlice(len(codes), func(i int) ([]any, error) {
			return []any{codes[i].InseeCode, codes[i].PostalCode, codes[i].City}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("ReplacePostalCodes: copy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ReplacePostalCodes: commit: %w", err)
	}
	return n, nil
}

func scanPostalCode(row pgx.Row, p *model.PostalCode) error {
	return row.Scan(
		&p.ID,
		&p.InseeCode,
		&p.PostalCode,
		&p.City,
	)
}
