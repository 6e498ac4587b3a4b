package audit

import (
	"fmt"
	"strconv"
)

// ScanEvent records one scan pass against the drive.
type ScanEvent struct {
	SessionID    string
	Added        int
	Success      bool
	ErrorMessage string
}

func (e ScanEvent) MessageID() string { return "scan" }

func (e ScanEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("scan %s indexed %d new files", e.SessionID, e.Added)
	}
	msg := fmt.Sprintf("scan %s failed", e.SessionID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ScanEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ScanEvent) Facility() int { return FacilityDaemon }

func (e ScanEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "scan",
			"added":     strconv.Itoa(e.Added),
		},
		SDIDSubject: {
			"session": e.SessionID,
		},
	}
}

// LinkEvent records a download link resolution.
type LinkEvent struct {
	ObjectID     string
	Success      bool
	ErrorMessage string
}

func (e LinkEvent) MessageID() string { return "link" }

func (e LinkEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("resolved download link for %s", e.ObjectID)
	}
	msg := fmt.Sprintf("failed to resolve download link for %s", e.ObjectID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e LinkEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e LinkEvent) Facility() int { return FacilityDaemon }

func (e LinkEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "link",
		},
		SDIDSubject: {
			"object": e.ObjectID,
		},
	}
}

// DeleteEvent records removal of a file from the index.
type DeleteEvent struct {
	ObjectID string
	Success  bool
}

func (e DeleteEvent) MessageID() string { return "delete" }

func (e DeleteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("removed %s from the index", e.ObjectID)
	}
	return fmt.Sprintf("failed to remove %s from the index", e.ObjectID)
}

func (e DeleteEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e DeleteEvent) Facility() int { return FacilityDaemon }

func (e DeleteEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "delete",
		},
		SDIDSubject: {
			"object": e.ObjectID,
		},
	}
}

// NoticeEvent records a push notification attempt.
type NoticeEvent struct {
	Title    string
	Template string
	Channel  string
	Code     int
	Success  bool
}

func (e NoticeEvent) MessageID() string { return "notice" }

func (e NoticeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("pushed %q via %s", e.Title, e.Channel)
	}
	return fmt.Sprintf("push of %q via %s failed with code %d", e.Title, e.Channel, e.Code)
}

func (e NoticeEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e NoticeEvent) Facility() int { return FacilityDaemon }

func (e NoticeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "notice",
			"template":  e.Template,
			"channel":   e.Channel,
			"code":      strconv.Itoa(e.Code),
		},
		SDIDSubject: {
			"title": e.Title,
		},
	}
}

// AuthnEvent records a token exchange attempt.
type AuthnEvent struct {
	Login    string
	ClientIP string
	Success  bool
}

func (e AuthnEvent) MessageID() string { return "authn" }

func (e AuthnEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Login)
	}
	return fmt.Sprintf("%s failed to authenticate", e.Login)
}

func (e AuthnEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthnEvent) Facility() int { return FacilityAuth }

func (e AuthnEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"login": e.Login,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
		},
	}
}
