package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"github.com/Dan9191/budget-advisor/internal/utils"
	"github.com/google/uuid"
)

// FallbackReply is shown to the user when the advisor cannot answer
const FallbackReply = "I'm sorry, I'm having trouble processing your request right now. Please try again in a moment."

const maxTitleRunes = 60

// ChatReply is the advisor's answer within a conversation
type ChatReply struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Response       string    `json:"response"`
}

// Chat sends message to the advisor. A nil conversationID starts a new
// conversation. The user's message is stored even when the advisor fails, in
// which case the returned error wraps ErrAdvisorUnavailable and the reply
// still carries the conversation id.
func (s *Service) Chat(ctx context.Context, userID int64, conversationID *uuid.UUID, message string) (ChatReply, error) {
	if message == "" {
		return ChatReply{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return ChatReply{}, err
	}
	if !p.IsPremium() {
		return ChatReply{}, ErrPremiumRequired
	}

	var (
		conv    *models.Conversation
		history []models.Message
	)
	if conversationID == nil {
		conv = &models.Conversation{ID: uuid.New(), UserID: userID, Title: title(message)}
		if err := s.store.CreateConversation(ctx, conv); err != nil {
			return ChatReply{}, err
		}
	} else {
		if conv, err = s.store.GetConversation(ctx, *conversationID, userID); err != nil {
			return ChatReply{}, err
		}
		if history, err = s.messages(ctx, conv.ID); err != nil {
			return ChatReply{}, err
		}
	}
	reply := ChatReply{ConversationID: conv.ID}

	if err := s.storeMessage(ctx, conv.ID, models.RoleUser, message); err != nil {
		return reply, err
	}

	var snapshot *models.BudgetSnapshot
	switch b, err := s.store.ActiveBudget(ctx, userID); {
	case err == nil:
		snapshot = &b.BudgetSnapshot
	case !errors.Is(err, repository.ErrNotFound):
		return reply, err
	}

	if s.advisor == nil {
		reply.Response = FallbackReply
		return reply, fmt.Errorf("%w: no advisor configured", ErrAdvisorUnavailable)
	}
	adviceCtx, cancel := context.WithTimeout(ctx, s.config.AITimeout)
	defer cancel()
	answer, err := s.advisor.Advise(adviceCtx, snapshot, history, message)
	if err != nil {
		s.log.Errorf("Advisor failed for user %d: %v", userID, err)
		reply.Response = FallbackReply
		return reply, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}

	if err := s.storeMessage(ctx, conv.ID, models.RoleAssistant, answer); err != nil {
		return reply, err
	}

	s.log.Infof("Advisor answered user %d in conversation %s", userID, conv.ID)
	reply.Response = answer
	return reply, nil
}

// Conversation returns the decrypted messages of a conversation owned by userID
func (s *Service) Conversation(ctx context.Context, userID int64, id uuid.UUID) ([]models.Message, error) {
	if _, err := s.store.GetConversation(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.messages(ctx, id)
}

func (s *Service) storeMessage(ctx context.Context, conversationID uuid.UUID, role, content string) error {
	body, err := utils.Encrypt(content, s.config.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt message: %w", err)
	}
	return s.store.AddMessage(ctx, &repository.StoredMessage{
		ConversationID: conversationID,
		Role:           role,
		Body:           body,
		HMAC:           utils.Sign(s.config.HMACSecret, conversationID.String(), role, content),
	})
}

func (s *Service) messages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	stored, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	messages := make([]models.Message, 0, len(stored))
	for _, m := range stored {
		content, err := utils.Decrypt(m.Body, s.config.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt message %d: %w", m.ID, err)
		}
		if !utils.Verify(s.config.HMACSecret, m.HMAC, conversationID.String(), m.Role, content) {
			return nil, fmt.Errorf("message %d failed integrity check", m.ID)
		}
		messages = append(messages, models.Message{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			Role:           m.Role,
			Content:        content,
			CreatedAt:      m.CreatedAt,
		})
	}
	return messages, nil
}

func title(message string) string {
	r := []rune(message)
	if len(r) <= maxTitleRunes {
		return message
	}
	return string(r[:maxTitleRunes]) + "…"
}
