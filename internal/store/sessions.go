package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/SparrowZheyuan18/expert-annotator/models"
)

// CreateSession inserts a new session with a generated id and the current
// timestamp. End time stays NULL until CompleteSession.
func (s *Store) CreateSession(ctx context.Context, expertName, topic, researchGoal string) (models.Session, error) {
	sess := models.Session{
		SessionID:    uuid.NewString(),
		ExpertName:   expertName,
		Topic:        topic,
		ResearchGoal: researchGoal,
		StartTime:    nowISO(),
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO sessions (session_id, expert_name, topic, research_goal, start_time, end_time)
VALUES (?, ?, ?, ?, ?, NULL)
`, sess.SessionID, sess.ExpertName, sess.Topic, sess.ResearchGoal, sess.StartTime)
	if err != nil {
		return models.Session{}, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// GetSession returns the session or ErrNotFound.
func (s *Store) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	return scanSession(s.DB.QueryRowContext(ctx, `
SELECT session_id, expert_name, topic, research_goal, start_time, end_time
FROM sessions WHERE session_id = ?
`, sessionID))
}

func scanSession(row rowScanner) (models.Session, error) {
	var sess models.Session
	var end sql.NullString
	err := row.Scan(&sess.SessionID, &sess.ExpertName, &sess.Topic, &sess.ResearchGoal, &sess.StartTime, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("reading session: %w", err)
	}
	if end.Valid {
		sess.EndTime = &end.String
	}
	return sess, nil
}

// CompleteSession stamps the end time and returns it. Calling it again
// overwrites the previous end time: the extension retries completion on
// flaky networks and a retry must not fail.
func (s *Store) CompleteSession(ctx context.Context, sessionID string) (string, error) {
	endedAt := nowISO()
	res, err := s.DB.ExecContext(ctx, `UPDATE sessions SET end_time = ? WHERE session_id = ?`, endedAt, sessionID)
	if err != nil {
		return "", fmt.Errorf("completing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrNotFound
	}
	return endedAt, nil
}

// DeleteSession removes the session; documents, highlights, search episodes
// and interactions cascade with it.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
