package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-terminal/internal/domain/entity"
	"github.com/sangkips/pos-terminal/internal/domain/enum"
	"github.com/sangkips/pos-terminal/pkg/apperror"
)

// AlertPublisher pushes a payload to the screens of a terminal
type AlertPublisher interface {
	Publish(terminalID string, payload []byte)
}

// AlertEvent is what screens receive on the alerts websocket
type AlertEvent struct {
	Type  string        `json:"type"` // "show" or "dismiss"
	Alert *entity.Alert `json:"alert"`
}

type activeAlert struct {
	alert *entity.Alert
	timer *time.Timer
}

// AlertService keeps at most one alert per terminal. A new alert replaces
// the active one and every alert dismisses itself after the ttl.
type AlertService struct {
	ttl       time.Duration
	publisher AlertPublisher
	now       func() time.Time
	mu        sync.Mutex
	active    map[string]*activeAlert
}

func NewAlertService(ttl time.Duration, publisher AlertPublisher) *AlertService {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &AlertService{
		ttl:       ttl,
		publisher: publisher,
		now:       time.Now,
		active:    make(map[string]*activeAlert),
	}
}

// Raise shows message on terminalID, replacing any active alert
func (s *AlertService) Raise(terminalID string, level enum.AlertLevel, message string) *entity.Alert {
	now := s.now()
	alert := &entity.Alert{
		ID:         uuid.New(),
		TerminalID: terminalID,
		Level:      level,
		Message:    message,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	s.mu.Lock()
	if prev, ok := s.active[terminalID]; ok {
		prev.timer.Stop()
	}
	s.active[terminalID] = &activeAlert{
		alert: alert,
		timer: time.AfterFunc(s.ttl, func() { s.expire(terminalID, alert.ID) }),
	}
	s.mu.Unlock()

	s.publish(terminalID, AlertEvent{Type: "show", Alert: alert})
	return alert
}

// RaiseError turns err into an error alert. Transport failures show the
// generic message and are logged with their cause.
func (s *AlertService) RaiseError(terminalID string, err error) {
	if err == nil {
		return
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		log.Printf("terminal %s: unexpected error: %v", terminalID, err)
		s.Raise(terminalID, enum.AlertLevelError, apperror.ErrInternalServer.Message)
		return
	}
	if appErr.Kind == apperror.KindTransport && appErr.Err != nil {
		log.Printf("terminal %s: backend unreachable: %v", terminalID, appErr.Err)
	}
	level := enum.AlertLevelError
	if appErr.Kind == apperror.KindConflict {
		level = enum.AlertLevelWarning
	}
	s.Raise(terminalID, level, appErr.Message)
}

// Active returns the alert currently shown on terminalID, if any
func (s *AlertService) Active(terminalID string) *entity.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[terminalID]
	if !ok || a.alert.IsExpired(s.now()) {
		return nil
	}
	return a.alert
}

// Dismiss removes the active alert of terminalID
func (s *AlertService) Dismiss(terminalID string) {
	s.mu.Lock()
	a, ok := s.active[terminalID]
	if ok {
		a.timer.Stop()
		delete(s.active, terminalID)
	}
	s.mu.Unlock()
	if ok {
		s.publish(terminalID, AlertEvent{Type: "dismiss", Alert: a.alert})
	}
}

func (s *AlertService) expire(terminalID string, id uuid.UUID) {
	s.mu.Lock()
	a, ok := s.active[terminalID]
	if !ok || a.alert.ID != id {
		s.mu.Unlock()
		return
	}
	delete(s.active, terminalID)
	s.mu.Unlock()
	s.publish(terminalID, AlertEvent{Type: "dismiss", Alert: a.alert})
}

func (s *AlertService) publish(terminalID string, event AlertEvent) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode alert event: %v", err)
		return
	}
	s.publisher.Publish(terminalID, payload)
}
