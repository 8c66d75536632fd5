package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	EventSynonymsUpdated = "synonyms_updated"
	EventSkillsUpdated   = "skills_updated"
	EventKeywordsUpdated = "keywords_updated"
)

type UpdateEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	Subject   string `json:"subject"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes dictionary change events to connected dashboards.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) SynonymsUpdated(action, token string) {
	n.publish(EventSynonymsUpdated, action, token)
}

func (n *Notifier) SkillsUpdated(action, kind string) {
	n.publish(EventSkillsUpdated, action, kind)
}

func (n *Notifier) KeywordsUpdated(action, role string) {
	n.publish(EventKeywordsUpdated, action, role)
}

func (n *Notifier) publish(eventType, action, subject string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := UpdateEvent{
		Type:      eventType,
		Action:    strings.ToLower(strings.TrimSpace(action)),
		Subject:   strings.ToLower(strings.TrimSpace(subject)),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
