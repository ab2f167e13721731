package workflow

// NotificationKind selects one of the four outbound e-mail templates.
type NotificationKind int

const (
	NotifySubmitted NotificationKind = iota
	NotifyRectified
	NotifyApproved
	NotifyRejected
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySubmitted:
		return "submitted"
	case NotifyRectified:
		return "rectified"
	case NotifyApproved:
		return "approved"
	case NotifyRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Notification is the delivery intent a successful transition emits. The
// engine never talks to SMTP itself; a dispatcher delivers these
// best-effort and its failures do not undo the transition.
type Notification struct {
	Kind        NotificationKind
	DocumentKey string
	Recipients  []string
	// Comment carries the manager's remark on approval/rejection.
	Comment string
}
