package entity

// AuditLog records an authentication event.
type AuditLog struct {
	UserID    int64 // zero when unknown
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}
