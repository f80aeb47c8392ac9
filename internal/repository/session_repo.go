package repository

import (
	"context"
	"database/sql"
	"errors"

	"parkdesk/internal/models"
)

// Partial unique index names backing the one-active-session invariants.
const (
	constraintOneActivePerPlate = "sessions_one_active_per_plate"
	constraintOneActivePerSlot  = "sessions_one_active_per_slot"
)

const sessionColumns = "id, plate, slot_id, billing_type, status, entry_time, exit_time, amount, created_at, updated_at"

func scanSession(row *sql.Row) (*models.Session, error) {
	var (
		s      models.Session
		exit   sql.NullTime
		amount sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.Plate, &s.SlotID, &s.BillingType, &s.Status, &s.EntryTime, &exit, &amount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if exit.Valid {
		t := exit.Time
		s.ExitTime = &t
	}
	if amount.Valid {
		a := amount.Int64
		s.Amount = &a
	}
	return &s, nil
}

// ActiveSessionByPlate returns the plate's active session, if any.
func (p *Postgres) ActiveSessionByPlate(ctx context.Context, plate string) (*models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM sessions WHERE plate = $1 AND status = $2`
	return scanSession(p.q.QueryRowContext(ctx, query, plate, models.SessionActive))
}

// ActiveSessionBySlot returns the slot's active session, if any.
func (p *Postgres) ActiveSessionBySlot(ctx context.Context, slotID int64) (*models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM sessions WHERE slot_id = $1 AND status = $2`
	return scanSession(p.q.QueryRowContext(ctx, query, slotID, models.SessionActive))
}

// LatestSessionBySlot returns the most recent session for the slot
// regardless of status.
func (p *Postgres) LatestSessionBySlot(ctx context.Context, slotID int64) (*models.Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE slot_id = $1
		ORDER BY entry_time DESC
		LIMIT 1
	`
	return scanSession(p.q.QueryRowContext(ctx, query, slotID))
}

// CreateSession inserts a new session. Unique violations on the partial
// active-session indexes surface as typed errors so the service layer can
// report the race precisely.
func (p *Postgres) CreateSession(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO sessions (plate, slot_id, billing_type, status, entry_time, exit_time, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := p.q.QueryRowContext(ctx, query,
		session.Plate,
		session.SlotID,
		session.BillingType,
		session.Status,
		session.EntryTime,
		session.ExitTime,
		session.Amount,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintOneActivePerPlate) {
			return ErrPlateSessionExists
		}
		if isUniqueViolation(err, constraintOneActivePerSlot) {
			return ErrSlotSessionExists
		}
		return err
	}
	return nil
}

// UpdateSession rewrites a session's mutable fields.
func (p *Postgres) UpdateSession(ctx context.Context, session *models.Session) error {
	const query = `
		UPDATE sessions
		SET entry_time = $2,
		    exit_time = $3,
		    amount = $4,
		    status = $5,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := p.q.ExecContext(ctx, query,
		session.ID,
		session.EntryTime,
		session.ExitTime,
		session.Amount,
		session.Status,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
