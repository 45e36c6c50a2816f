package controller

import (
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/model"
	"AfrilanceWeb/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type MessagingController struct {
	messagingService *service.MessagingService
}

func NewMessagingController(messagingService *service.MessagingService) *MessagingController {
	return &MessagingController{
		messagingService: messagingService,
	}
}

// GetState godoc
// @Summary      Messenger State
// @Description  Return the session's messaging widget state. The first call loads the conversation list.
// @Tags         messaging
// @Produce      json
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessengerState}
// @Failure      401  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/state [get]
func (c *MessagingController) GetState(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	resp, err := c.messagingService.GetState(r.Context(), session)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// RefreshConversations godoc
// @Summary      Reload Conversations
// @Description  Reload the conversation list from the marketplace API
// @Tags         messaging
// @Produce      json
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessengerState}
// @Failure      401  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/conversations/refresh [post]
func (c *MessagingController) RefreshConversations(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	resp, err := c.messagingService.RefreshConversations(r.Context(), session)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// SelectConversation godoc
// @Summary      Select Conversation
// @Description  Open a conversation and load its messages
// @Tags         messaging
// @Produce      json
// @Param        conversationID path string true "Conversation ID"
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessengerState}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/conversations/{conversationID}/select [post]
func (c *MessagingController) SelectConversation(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		helper.WriteError(w, helper.NewBadRequestError("Invalid conversation ID"))
		return
	}

	resp, err := c.messagingService.SelectConversation(r.Context(), session, conversationID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// Search godoc
// @Summary      Search Users
// @Description  Update the user search query. The search runs after a debounce and results arrive as a search.updated event; queries shorter than two characters clear the results.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        request body model.SearchUsersRequest true "Search Users Request"
// @Success      202  {object}  helper.ResponseSuccess
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/search [post]
func (c *MessagingController) Search(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.SearchUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	if err := c.messagingService.Search(r.Context(), session, req); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteAccepted(w, nil)
}

// StartConversation godoc
// @Summary      Start Conversation
// @Description  Send a greeting to a user from the search results, then reload the conversation list and open the new conversation
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        request body model.StartConversationRequest true "Start Conversation Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessengerState}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/conversations/start [post]
func (c *MessagingController) StartConversation(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.StartConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.messagingService.StartConversation(r.Context(), session, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// UpdateDraft godoc
// @Summary      Update Draft
// @Description  Store the message input of the open conversation
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        request body model.UpdateDraftRequest true "Update Draft Request"
// @Success      200  {object}  helper.ResponseSuccess
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/draft [put]
func (c *MessagingController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	if err := c.messagingService.UpdateDraft(r.Context(), session, req); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, nil)
}

// Send godoc
// @Summary      Send Message
// @Description  Send the draft, or the given content, to the open conversation. Blank input, no open conversation or a send already in flight are rejected without contacting the marketplace API.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        request body model.SendDraftRequest false "Send Message Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessengerState}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      409  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/send [post]
func (c *MessagingController) Send(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.SendDraftRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("Invalid request body", "error", err)
			helper.WriteError(w, helper.NewBadRequestError(""))
			return
		}
	}

	resp, err := c.messagingService.Send(r.Context(), session, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// KeyPress godoc
// @Summary      Message Input Key Press
// @Description  Forward a key press from the message input. Enter sends the draft; Shift+Enter and other keys do nothing.
// @Tags         messaging
// @Accept       json
// @Produce      json
// @Param        request body model.KeyPressRequest true "Key Press Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessengerState}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      409  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/messaging/keypress [post]
func (c *MessagingController) KeyPress(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.KeyPressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.messagingService.KeyPress(r.Context(), session, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
