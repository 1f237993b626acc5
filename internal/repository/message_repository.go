package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unifylabs/unify-backend/internal/model"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at`,
		m.SenderID, m.ReceiverID, m.Body).Scan(&m.ID, &m.SentAt)
}

// Conversations lists the user's message threads, most recent first,
// one row per peer with the latest message.
func (r *MessageRepository) Conversations(ctx context.Context, userID int) ([]model.Conversation, error) {
	// DISTINCT ON needs peer_id as the leading sort key to pick each
	// thread's latest message; the outer ORDER BY restores the
	// most-recent-first ordering the handler promises.
	rows, err := r.pool.Query(ctx, `
		SELECT peer_id, full_name, body, sent_at
		FROM (
			SELECT DISTINCT ON (peer_id) peer_id, u.full_name, m.body, m.sent_at
			FROM (
				SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS peer_id,
				       body, sent_at
				FROM messages
				WHERE sender_id = $1 OR receiver_id = $1
			) m
			JOIN users u ON u.id = m.peer_id
			ORDER BY peer_id, m.sent_at DESC
		) latest
		ORDER BY sent_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.PeerID, &c.PeerName, &c.LastMessage, &c.LastSentAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// Thread returns the full exchange between two users, oldest first.
func (r *MessageRepository) Thread(ctx context.Context, userID, peerID int) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, body, sent_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at ASC`, userID, peerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.SentAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
