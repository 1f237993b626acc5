package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

// ErrUnknownReceiver is returned when a message names a nonexistent user.
var ErrUnknownReceiver = errors.New("unknown receiver")

// MessageService handles direct messages between portal users. Sending
// a message also enqueues a notification for the receiver's feed.
type MessageService struct {
	messageRepo   *repository.MessageRepository
	userRepo      *repository.UserRepository
	notifications *NotificationService
	log           zerolog.Logger
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		notifications: notifications,
		log:           log.With().Str("component", "message_service").Logger(),
	}
}

func (s *MessageService) Send(ctx context.Context, sender *model.User, req model.SendMessageRequest) (*model.Message, error) {
	if req.ReceiverID == sender.ID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrUnknownReceiver)
	}
	if _, err := s.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownReceiver
		}
		return nil, err
	}

	msg := &model.Message{
		SenderID:   sender.ID,
		ReceiverID: req.ReceiverID,
		Body:       req.Body,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}

	if err := s.notifications.Enqueue(ctx, model.Notification{
		UserID:   req.ReceiverID,
		Title:    "New message",
		Body:     fmt.Sprintf("%s sent you a message.", sender.FullName),
		Kind:     model.NotificationMessage,
		Priority: model.PriorityMedium,
	}); err != nil {
		s.log.Warn().Err(err).Int("receiver_id", req.ReceiverID).Msg("message notification enqueue failed")
	}

	return msg, nil
}

func (s *MessageService) Conversations(ctx context.Context, userID int) ([]model.Conversation, error) {
	return s.messageRepo.Conversations(ctx, userID)
}

func (s *MessageService) Thread(ctx context.Context, userID, peerID int) ([]model.Message, error) {
	return s.messageRepo.Thread(ctx, userID, peerID)
}
