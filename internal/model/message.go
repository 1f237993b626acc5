package model

import "time"

// Message is a direct message between two portal users.
type Message struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

// Conversation summarizes a message thread with another user.
type Conversation struct {
	PeerID      int       `json:"peer_id"`
	PeerName    string    `json:"peer_name"`
	LastMessage string    `json:"last_message"`
	LastSentAt  time.Time `json:"last_sent_at"`
}

// SendMessageRequest is the payload for sending a direct message.
type SendMessageRequest struct {
	ReceiverID int    `json:"receiver_id" binding:"required,min=1"`
	Body       string `json:"body" binding:"required,min=1,max=4000"`
}
