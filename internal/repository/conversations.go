package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/google/uuid"
)

// StoredMessage is a chat message as persisted: the body is encrypted and
// signed by the service layer.
type StoredMessage struct {
	ID             int64
	ConversationID uuid.UUID
	Role           string
	Body           string
	HMAC           string
	CreatedAt      time.Time
}

// CreateConversation stores a new conversation
func (r *Repository) CreateConversation(ctx context.Context, c *models.Conversation) error {
	query := `
		INSERT INTO advisor.ai_conversations (id, user_id, title, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING created_at`
	if err := r.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.Title).Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// GetConversation returns a conversation owned by userID
func (r *Repository) GetConversation(ctx context.Context, id uuid.UUID, userID int64) (*models.Conversation, error) {
	c := &models.Conversation{ID: id, UserID: userID}
	query := `
		SELECT title, created_at
		FROM advisor.ai_conversations
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&c.Title, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return c, nil
}

// AddMessage appends a message to a conversation
func (r *Repository) AddMessage(ctx context.Context, m *StoredMessage) error {
	query := `
		INSERT INTO advisor.ai_messages (conversation_id, role, body_enc, hmac, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, m.ConversationID, m.Role, m.Body, m.HMAC).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("failed to add message: %w", err)
	}
	return nil
}

// ListMessages returns the messages of a conversation in the order they were added
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]StoredMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, body_enc, hmac, created_at
		FROM advisor.ai_messages
		WHERE conversation_id = $1
		ORDER BY id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []StoredMessage
	for rows.Next() {
		var m StoredMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Body, &m.HMAC, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
