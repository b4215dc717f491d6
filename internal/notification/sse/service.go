// Package sse provides Server-Sent Events support for real-time notifications.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"serveportal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventType represents different types of SSE events
type EventType string

const (
	EventJobAssigned        EventType = "job_assigned"
	EventJobReconciled      EventType = "job_status_reconciled"
	EventAffidavitGenerated EventType = "affidavit_generated"
	EventAffidavitSent      EventType = "affidavit_sent"
	EventInAppNotification  EventType = "in_app_notification"
)

// Event represents an SSE event payload
type Event struct {
	Type    EventType `json:"type"`
	JobID   uuid.UUID `json:"jobId,omitempty"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
}

type client struct {
	userID   uuid.UUID
	tenantID uuid.UUID
	events   chan Event
}

// Service manages SSE connections and event broadcasting
type Service struct {
	mu        sync.RWMutex
	clients   map[uuid.UUID][]*client // userID -> clients
	tenantMap map[uuid.UUID]map[uuid.UUID]int
	log       *logger.Logger
}

func New(log *logger.Logger) *Service {
	return &Service{
		clients:   make(map[uuid.UUID][]*client),
		tenantMap: make(map[uuid.UUID]map[uuid.UUID]int),
		log:       log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c.userID] = append(s.clients[c.userID], c)

	if c.tenantID != uuid.Nil {
		users := s.tenantMap[c.tenantID]
		if users == nil {
			users = make(map[uuid.UUID]int)
			s.tenantMap[c.tenantID] = users
		}
		users[c.userID]++
	}
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[c.userID]
	for i, cl := range clients {
		if cl == c {
			s.clients[c.userID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(s.clients[c.userID]) == 0 {
		delete(s.clients, c.userID)
	}

	if users := s.tenantMap[c.tenantID]; users != nil {
		users[c.userID]--
		if users[c.userID] <= 0 {
			delete(users, c.userID)
		}
		if len(users) == 0 {
			delete(s.tenantMap, c.tenantID)
		}
	}

	close(c.events)
}

// Publish sends an event to a specific user. Slow clients drop events.
func (s *Service) Publish(userID uuid.UUID, event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients[userID] {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse buffer full", "userId", userID, "event", event.Type)
		}
	}
}

// PublishToTenant broadcasts an event to every connected user of a company.
func (s *Service) PublishToTenant(tenantID uuid.UUID, event Event) {
	s.mu.RLock()
	userIDs := make([]uuid.UUID, 0, len(s.tenantMap[tenantID]))
	for userID := range s.tenantMap[tenantID] {
		userIDs = append(userIDs, userID)
	}
	s.mu.RUnlock()

	for _, userID := range userIDs {
		s.Publish(userID, event)
	}
}

// Connected reports how many streams a user has open.
func (s *Service) Connected(userID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients[userID])
}

// Handler returns a Gin handler for SSE connections
func (s *Service) Handler(getUserID func(*gin.Context) (uuid.UUID, bool), getTenantID func(*gin.Context) (uuid.UUID, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		tenantID, _ := getTenantID(c)

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			userID:   userID,
			tenantID: tenantID,
			events:   make(chan Event, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"userId": userID, "tenantId": tenantID})
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}
