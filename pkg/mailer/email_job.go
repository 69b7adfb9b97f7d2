package mailer

// EmailJob is one queued email. It carries either a Template with its Data,
// or a prerendered Subject with Text and/or HTML.
type EmailJob struct {
	ID       string         `json:"id,omitempty"` // set by the publisher, echoed in worker logs
	To       string         `json:"to"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
}
