// Package storage - swap session persistence.
package storage

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/crosslock-exchange/crosslock/internal/swap"
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)

// SaveSession inserts or replaces a swap session.
func (s *Storage) SaveSession(sess *swap.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var secret *string
	if len(sess.Secret) > 0 {
		v := hex.EncodeToString(sess.Secret)
		secret = &v
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sessions
		(id, role, state, own_address, peer_address, secret_hash, secret,
		 amount, lock_time, funding_tx_hex, refund_tx_hex, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, string(sess.Role), string(sess.State),
		sess.OwnAddress, sess.PeerAddress,
		hex.EncodeToString(sess.SecretHash), secret,
		sess.Amount, sess.LockTime,
		sess.FundingTxHex, sess.RefundTxHex,
		sess.CreatedAt.Unix(), sess.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession fetches a session by id.
func (s *Storage) GetSession(id string) (*swap.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, role, state, own_address, peer_address, secret_hash, secret,
		       amount, lock_time, funding_tx_hex, refund_tx_hex, created_at, updated_at
		FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

// ListSessions returns all sessions, optionally filtered by state. Pass an
// empty state to list everything.
func (s *Storage) ListSessions(state swap.State) ([]*swap.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, role, state, own_address, peer_address, secret_hash, secret,
		       amount, lock_time, funding_tx_hex, refund_tx_hex, created_at, updated_at
		FROM sessions`
	args := []interface{}{}
	if state != "" {
		query += " WHERE state = ?"
		args = append(args, string(state))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*swap.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session.
func (s *Storage) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*swap.Session, error) {
	var (
		sess               swap.Session
		role, state        string
		secretHashHex      string
		secretHex          sql.NullString
		createdAt, updated int64
	)

	err := row.Scan(
		&sess.ID, &role, &state,
		&sess.OwnAddress, &sess.PeerAddress,
		&secretHashHex, &secretHex,
		&sess.Amount, &sess.LockTime,
		&sess.FundingTxHex, &sess.RefundTxHex,
		&createdAt, &updated,
	)
	if err != nil {
		return nil, err
	}

	sess.Role = swap.Role(role)
	sess.State = swap.State(state)
	sess.SecretHash, err = hex.DecodeString(secretHashHex)
	if err != nil {
		return nil, fmt.Errorf("corrupt secret hash for session %s: %w", sess.ID, err)
	}
	if secretHex.Valid {
		sess.Secret, err = hex.DecodeString(secretHex.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt secret for session %s: %w", sess.ID, err)
		}
	}
	sess.CreatedAt = time.Unix(createdAt, 0).UTC()
	sess.UpdatedAt = time.Unix(updated, 0).UTC()

	return &sess, nil
}
