package game

import "time"

// Notify appends a raw message to the transient log.
func (s *Simulation) Notify(message string, severity Severity) {
	s.mutate(func() {
		s.pushNotification(message, severity)
	})
}

func (s *Simulation) notify(severity Severity, key messageKey, args ...any) {
	s.pushNotification(localize(s.state.Language, key, args...), severity)
}

func (s *Simulation) pushNotification(message string, severity Severity) {
	switch severity {
	case SeverityInfo, SeveritySuccess, SeverityWarning:
	default:
		severity = SeverityInfo
	}
	s.state.Notifications = append(s.state.Notifications, Notification{
		ID:        s.ids.next("note"),
		Message:   message,
		Severity:  severity,
		CreatedAt: s.now(),
	})
	if severity == SeverityWarning {
		s.log.Warnf("notify: %s", message)
		return
	}
	s.log.Infof("notify: %s", message)
}

func (s *Simulation) expireNotifications(now time.Time) bool {
	kept := s.state.Notifications[:0]
	for _, n := range s.state.Notifications {
		if now.Sub(n.CreatedAt) < s.tuning.NotificationTTL {
			kept = append(kept, n)
		}
	}
	changed := len(kept) != len(s.state.Notifications)
	clear(s.state.Notifications[len(kept):])
	s.state.Notifications = kept
	return changed
}
