package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/middleware"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
	"github.com/unifylabs/unify-backend/internal/validator"
)

// MessageHandler covers direct messaging between users.
type MessageHandler struct {
	messages *service.MessageService
	userRepo *repository.UserRepository
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages *service.MessageService, userRepo *repository.UserRepository) *MessageHandler {
	return &MessageHandler{messages: messages, userRepo: userRepo}
}

// Send godoc
// POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SendMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sender, err := h.userRepo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), sender, req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownReceiver) {
			response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidPayload, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

// Conversations godoc
// GET /api/v1/messages
// Returns the latest message per peer, newest first.
func (h *MessageHandler) Conversations(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	conversations, err := h.messages.Conversations(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conversations": conversations})
}

// Thread godoc
// GET /api/v1/messages/:user_id
// Returns the full two-way thread with one peer, oldest first.
func (h *MessageHandler) Thread(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	peerID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	thread, err := h.messages.Thread(c.Request.Context(), claims.UserID, peerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": thread})
}
