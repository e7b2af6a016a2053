package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"draftdeck/internal/modules/documents"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

type wsClientFrame struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type wsServerFrame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ChatSocket upgrades the connection and runs a prompt/reply loop over
// one document's conversation.
//
// Endpoint: GET /documents/:id/chat/ws?token=ACCESS_TOKEN
func (h *Handler) ChatSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_ACCESS_TOKEN"})
		return
	}

	payload, err := h.verifier.VerifyAccess(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	// Ownership is checked before the upgrade so the client gets a
	// plain HTTP status instead of an immediate close frame.
	if _, err := h.service.docs.Get(c.Request.Context(), payload.UserID, docID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("User %d opened chat socket for document %d", payload.UserID, docID)
	defer log.Printf("User %d closed chat socket for document %d", payload.UserID, docID)

	conn.SetReadLimit(maxMsgSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	h.chatLoop(conn, payload.UserID, docID)
}

func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) chatLoop(conn *websocket.Conn, userID, docID int64) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for user %d: %v", userID, err)
			}
			return
		}

		var frame wsClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.sendWSError(conn, "INVALID_JSON", "Failed to parse message")
			continue
		}

		switch frame.Type {
		case "message":
			reply, err := h.service.SendChatMessage(context.Background(), userID, docID, frame.Message)
			if err != nil {
				h.sendWSError(conn, wsErrorCode(err), "Failed to generate reply")
				continue
			}
			h.writeFrame(conn, wsServerFrame{Type: "reply", Payload: reply})
		case "ping":
			h.writeFrame(conn, wsServerFrame{Type: "pong"})
		default:
			h.sendWSError(conn, "UNKNOWN_TYPE", "Unknown message type: "+frame.Type)
		}
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, frame wsServerFrame) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteJSON(frame)
}

func (h *Handler) sendWSError(conn *websocket.Conn, code, message string) {
	h.writeFrame(conn, wsServerFrame{Type: "error", Code: code, Message: message})
}

func wsErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrPromptTooLong):
		return "VALIDATION_ERROR"
	case errors.Is(err, documents.ErrDocumentNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUpstream):
		return "UPSTREAM_ERROR"
	default:
		return "SEND_FAILED"
	}
}
