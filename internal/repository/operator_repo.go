package repository

import (
	"context"
	"database/sql"
	"errors"

	"parkdesk/internal/models"
)

// OperatorByUsername fetches a console operator.
func (p *Postgres) OperatorByUsername(ctx context.Context, username string) (*models.Operator, error) {
	const query = `
		SELECT id, username, name, password_hash, created_at, updated_at
		FROM operators
		WHERE username = $1
	`
	var op models.Operator
	err := p.q.QueryRowContext(ctx, query, username).
		Scan(&op.ID, &op.Username, &op.Name, &op.PasswordHash, &op.CreatedAt, &op.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &op, nil
}

// UpsertOperator provisions or updates an operator account.
func (p *Postgres) UpsertOperator(ctx context.Context, operator *models.Operator) error {
	const query = `
		INSERT INTO operators (username, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return p.q.QueryRowContext(ctx, query, operator.Username, operator.Name, operator.PasswordHash).
		Scan(&operator.ID, &operator.CreatedAt, &operator.UpdatedAt)
}
