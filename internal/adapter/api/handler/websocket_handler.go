package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sync"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"bookbazaar/internal/domain/entity"
	"bookbazaar/internal/infrastructure/firebase"
	ws "bookbazaar/internal/infrastructure/websocket"
	"bookbazaar/internal/region"
	"bookbazaar/internal/usecase"
	"bookbazaar/pkg/errors"
	"bookbazaar/pkg/logger"
)

// WebSocketHandler owns the live browsing surface. Each connection gets its
// own catalog view (filters plus page cursor) and at most one open
// conversation session, both torn down when the socket goes away.
type WebSocketHandler struct {
	wsManager     *ws.Manager
	firebaseAuth  *firebase.FirebaseAuthClient
	chatUseCase   *usecase.ChatUseCase
	engine        *usecase.CatalogEngine
	defaultLocale string
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	firebaseAuth *firebase.FirebaseAuthClient,
	chatUseCase *usecase.ChatUseCase,
	engine *usecase.CatalogEngine,
	defaultLocale string,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:     wsManager,
		firebaseAuth:  firebaseAuth,
		chatUseCase:   chatUseCase,
		engine:        engine,
		defaultLocale: defaultLocale,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	// Browsers cannot set headers on websocket upgrades, so the token rides
	// in the query string.
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	userID, err := h.firebaseAuth.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	locale := c.QueryParam("locale")
	if locale == "" {
		locale = h.defaultLocale
	}
	session := newClientSession(h, client, region.NormalizeLocale(locale))

	go client.WritePump()
	go func() {
		client.ReadPump(h.wsManager, session.handle)
		session.close()
	}()

	return nil
}

// clientSession is the per-connection state machine driven by inbound
// commands. All command handling runs on the connection's read goroutine;
// the mutex only guards against the chat pump firing concurrently.
type clientSession struct {
	handler *WebSocketHandler
	client  *ws.Client
	view    *usecase.CatalogView

	mu   sync.Mutex
	chat *usecase.ConversationSession
}

type wsCommand struct {
	Action         string `json:"action"`
	Value          string `json:"value,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

func newClientSession(h *WebSocketHandler, client *ws.Client, locale string) *clientSession {
	return &clientSession{
		handler: h,
		client:  client,
		view:    usecase.NewCatalogView(h.engine, locale),
	}
}

func (s *clientSession) handle(raw []byte) {
	var cmd wsCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.sendError(errors.BadRequest("Malformed command", err))
		return
	}

	switch cmd.Action {
	case "refresh":
		s.pushCatalog()
	case "set_search":
		s.view.SetSearch(cmd.Value)
		s.pushCatalog()
	case "set_subject":
		s.view.SetSubject(cmd.Value)
		s.pushCatalog()
	case "set_condition":
		s.view.SetCondition(entity.Condition(cmd.Value))
		s.pushCatalog()
	case "select_region":
		s.view.SelectRegion(cmd.Value)
		s.pushCatalog()
	case "select_subregion":
		s.view.SelectSubregion(cmd.Value)
		s.pushCatalog()
	case "select_locality":
		s.view.SelectLocality(cmd.Value)
		s.pushCatalog()
	case "clear_filters":
		s.view.ClearFilters()
		s.pushCatalog()
	case "next_page":
		s.view.NextPage()
		s.pushCatalog()
	case "prev_page":
		s.view.PrevPage()
		s.pushCatalog()
	case "open_conversation":
		s.openConversation(cmd.ConversationID)
	case "set_draft":
		s.withChat(func(chat *usecase.ConversationSession) error {
			chat.SetDraft(cmd.Value)
			return nil
		})
	case "send_message":
		s.withChat(func(chat *usecase.ConversationSession) error {
			return chat.Send(context.Background())
		})
	case "close_conversation":
		s.closeConversation()
	default:
		s.sendError(errors.BadRequest("Unknown action", nil))
	}
}

func (s *clientSession) pushCatalog() {
	s.sendEvent("catalog", s.view.Visible())
}

func (s *clientSession) openConversation(conversationID string) {
	// One open conversation per connection; switching closes the old one
	// before the new subscription starts.
	s.closeConversation()

	chat, err := s.handler.chatUseCase.OpenConversation(context.Background(), conversationID, s.client.UserID)
	if err != nil {
		s.sendError(err)
		return
	}

	s.mu.Lock()
	s.chat = chat
	s.mu.Unlock()

	s.sendEvent("conversation_opened", chat.Conversation())

	// Registering the callback replays messages the session already holds,
	// so history that arrived before this point goes out right behind the
	// opened event.
	chat.SetOnUpdate(func(messages []*entity.ChatMessage) {
		s.sendEvent("conversation_messages", map[string]interface{}{
			"conversation_id": conversationID,
			"messages":        messages,
		})
	})
}

func (s *clientSession) withChat(fn func(*usecase.ConversationSession) error) {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()

	if chat == nil {
		s.sendError(errors.BadRequest("No open conversation", nil))
		return
	}

	if err := fn(chat); err != nil {
		// On a failed send the draft is already restored; the client only
		// needs to surface the error.
		s.sendError(err)
	}
}

func (s *clientSession) closeConversation() {
	s.mu.Lock()
	chat := s.chat
	s.chat = nil
	s.mu.Unlock()

	if chat != nil {
		chat.Close()
	}
}

func (s *clientSession) close() {
	s.closeConversation()
}

type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func (s *clientSession) sendEvent(eventType string, data interface{}) {
	payload, err := json.Marshal(wsEvent{Type: eventType, Data: data})
	if err != nil {
		logger.Error("Failed to encode %s event: %v", eventType, err)
		return
	}

	select {
	case s.client.Send <- payload:
	default:
		logger.Warn("Dropping %s event for slow client %s", eventType, s.client.UserID)
	}
}

func (s *clientSession) sendError(err error) {
	code := "INTERNAL_ERROR"
	message := "Something went wrong"

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
	}

	s.sendEvent("error", map[string]string{"code": code, "message": message})
}
