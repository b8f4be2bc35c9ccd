package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/session"
	"github.com/sirupsen/logrus"
)

const (
	getSessionQuery    = `SELECT data, updated_at FROM sessions WHERE id = ?`
	upsertSessionQuery = `INSERT INTO sessions (id, data, created_at, updated_at) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	deleteSessionQuery = `DELETE FROM sessions WHERE id = ?`
	sweepSessionsQuery = `DELETE FROM sessions WHERE updated_at < ?`
)

// SessionStore is a session.Store backed by SQLite. Sessions are stored as
// JSON documents and expire after ttl without a Save.
type SessionStore struct {
	db     *sql.DB
	config Config
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger

	getStmt    *sql.Stmt
	upsertStmt *sql.Stmt
	deleteStmt *sql.Stmt
	sweepStmt  *sql.Stmt
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(db *sql.DB, config Config, ttl time.Duration, logger *logrus.Logger) (*SessionStore, error) {
	const op = "db.NewSessionStore"
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &SessionStore{
		db:     db,
		config: config,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}

	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.getStmt, getSessionQuery},
		{&s.upsertStmt, upsertSessionQuery},
		{&s.deleteStmt, deleteSessionQuery},
		{&s.sweepStmt, sweepSessionsQuery},
	}
	for _, st := range stmts {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, errors.Internal(op, err, "failed to prepare statement")
		}
		*st.dst = stmt
	}

	return s, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	const op = "db.SessionStore.Get"

	var data string
	var updatedAt int64
	err := withRetry(ctx, s.config, func() error {
		return s.getStmt.QueryRowContext(ctx, id).Scan(&data, &updatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound(op, nil, "session not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "failed to load session")
	}

	if s.ttl > 0 && s.now().Sub(time.Unix(0, updatedAt)) > s.ttl {
		if err := s.Delete(ctx, id); err != nil {
			s.logger.WithError(err).WithField("session_id", id).Warn("Failed to delete expired session")
		}
		return nil, errors.NotFound(op, nil, "session expired")
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, errors.Internal(op, err, "failed to decode session")
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	const op = "db.SessionStore.Save"
	if sess == nil || sess.ID == "" {
		return errors.InvalidInput(op, nil, "session id is required")
	}

	now := s.now()
	sess.UpdatedAt = now
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Internal(op, err, "failed to encode session")
	}

	err = withRetry(ctx, s.config, func() error {
		_, err := s.upsertStmt.ExecContext(ctx, sess.ID, string(data), now.UnixNano(), now.UnixNano())
		return err
	})
	if err != nil {
		return errors.Internal(op, err, "failed to save session")
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	const op = "db.SessionStore.Delete"

	err := withRetry(ctx, s.config, func() error {
		_, err := s.deleteStmt.ExecContext(ctx, id)
		return err
	})
	if err != nil {
		return errors.Internal(op, err, "failed to delete session")
	}
	return nil
}

// Sweep deletes every expired session.
func (s *SessionStore) Sweep(ctx context.Context) (int, error) {
	const op = "db.SessionStore.Sweep"
	if s.ttl <= 0 {
		return 0, nil
	}

	var removed int64
	cutoff := s.now().Add(-s.ttl).UnixNano()
	err := withRetry(ctx, s.config, func() error {
		res, err := s.sweepStmt.ExecContext(ctx, cutoff)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, errors.Internal(op, err, "failed to sweep sessions")
	}

	if removed > 0 {
		s.logger.WithField("removed", removed).Info("Expired sessions swept")
	}
	return int(removed), nil
}

// Close releases the prepared statements. The *sql.DB stays open.
func (s *SessionStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.getStmt, s.upsertStmt, s.deleteStmt, s.sweepStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
