package ws

import "time"

// ReminderEvent is pushed to a connected session when a check-in or
// check-out is still outstanding.
type ReminderEvent struct {
	Type           string `json:"type"` // always "reminder"
	ExpectedAction string `json:"expected_action"`
	Message        string `json:"message"`
	SentAt         int64  `json:"sent_at"`
}

// ReminderHub delivers attendance reminders to connected sessions. It
// satisfies checkin.ReminderSink.
type ReminderHub struct {
	*Hub
}

func NewReminderHub() *ReminderHub {
	return &ReminderHub{Hub: NewHub()}
}

func (h *ReminderHub) SendReminder(userID uint, expectedAction string) {
	h.BroadcastToUser(userID, ReminderEvent{
		Type:           "reminder",
		ExpectedAction: expectedAction,
		Message:        "Don't forget to " + expectedAction + " today",
		SentAt:         time.Now().Unix(),
	})
}

// BroadcastAnnouncement pushes a new announcement notice to all sessions.
func (h *ReminderHub) BroadcastAnnouncement(title string) {
	h.BroadcastAll(map[string]interface{}{
		"type":  "announcement",
		"title": title,
	})
}
