package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/voltline/internal/chatbot"
)

// ChatHandler answers the site assistant widget.
type ChatHandler struct {
	bot *chatbot.Bot
}

func NewChatHandler(bot *chatbot.Bot) *ChatHandler {
	return &ChatHandler{bot: bot}
}

type chatRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

// Reply returns the scripted answer for one message.
func (h *ChatHandler) Reply(c *fiber.Ctx) error {
	var req chatRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	reply, err := h.bot.Reply(req.Message)
	if err != nil {
		return err
	}
	return c.JSON(reply)
}
