package http

import (
	"fmt"
	"net/http"

	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ChatHistory handles GET /api/v1/chat/rooms/{roomId}/messages?limit=.
func (s *Server) ChatHistory(c echo.Context) error {
	var limit int
	if err := queryParam(c, "limit", &limit); err != nil {
		return err
	}

	query, err := queries.NewGetChatHistoryQuery(c.Param("roomId"), limit)
	if err != nil {
		return err
	}
	views, err := s.h.GetChatHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]chatMessageResponse, len(views))
	for i, v := range views {
		resp[i] = fromChatMessageView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// PostChatMessage handles POST /api/v1/chat/rooms/{roomId}/messages. The
// message is stored before live subscribers see it.
func (s *Server) PostChatMessage(c echo.Context) error {
	var req chatMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := identity(c)
	cmd, err := commands.NewPostChatMessageCommand(c.Param("roomId"), fmt.Sprintf("%s:%s", id.Role, id.ID), req.Message, "")
	if err != nil {
		return err
	}
	msg, err := s.h.PostChatMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toChatMessageResponse(msg))
}
