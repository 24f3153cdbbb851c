package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserLoggedIn     = "auth.logged_in"
	EventTypeSessionRefreshed = "auth.session_refreshed"
	EventTypeUserLoggedOut    = "auth.logged_out"
	EventTypeUserBlocked      = "user.blocked"
)

type UserLoggedInEvent struct {
	BaseEvent
	UserID       string `json:"user_id"`
	EnterpriseID string `json:"enterprise_id"`
	SessionID    string `json:"session_id"`
}

func NewUserLoggedInEvent(userID, enterpriseID, sessionID string) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserLoggedIn,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":       userID,
				"enterprise_id": enterpriseID,
				"session_id":    sessionID,
			},
		},
		UserID:       userID,
		EnterpriseID: enterpriseID,
		SessionID:    sessionID,
	}
}

type SessionRefreshedEvent struct {
	BaseEvent
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

func NewSessionRefreshedEvent(userID, sessionID string) *SessionRefreshedEvent {
	return &SessionRefreshedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSessionRefreshed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"session_id": sessionID,
			},
		},
		UserID:    userID,
		SessionID: sessionID,
	}
}

type UserLoggedOutEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
}

func NewUserLoggedOutEvent(sessionID string) *UserLoggedOutEvent {
	return &UserLoggedOutEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserLoggedOut,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"session_id": sessionID,
			},
		},
		SessionID: sessionID,
	}
}

type UserBlockedEvent struct {
	BaseEvent
	UserID       string `json:"user_id"`
	EnterpriseID string `json:"enterprise_id"`
	BlockedBy    string `json:"blocked_by"`
}

func NewUserBlockedEvent(userID, enterpriseID, blockedBy string) *UserBlockedEvent {
	return &UserBlockedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserBlocked,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":       userID,
				"enterprise_id": enterpriseID,
				"blocked_by":    blockedBy,
			},
		},
		UserID:       userID,
		EnterpriseID: enterpriseID,
		BlockedBy:    blockedBy,
	}
}
