package main

import (
	"net/http"

	"whalink/internal/models"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/mux"
)

// handleChatStream upgrades to a websocket and pushes simulated inbound
// messages for the chat until the client goes away. Each connection is
// its own independent subscription.
func (s *Server) handleChatStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatID := mux.Vars(r)["id"]

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			s.logger.WithError(err).Warn("Websocket upgrade failed")
			return
		}
		defer conn.Close(websocket.StatusInternalError, "stream closed")

		// CloseRead cancels the context when the peer disconnects
		ctx := conn.CloseRead(r.Context())

		inbound := make(chan models.Message, 16)
		cancel := s.store.SubscribeChat(chatID, func(msg models.Message) {
			select {
			case inbound <- msg:
			default:
				// slow consumer; drop rather than block the feed
			}
		})
		defer cancel()

		s.logger.WithField("chatId", chatID).Debug("Chat stream opened")

		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case msg := <-inbound:
				if err := wsjson.Write(ctx, conn, msg); err != nil {
					s.logger.WithError(err).Debug("Chat stream write failed")
					return
				}
			}
		}
	}
}
