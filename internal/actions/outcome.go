// internal/actions/outcome.go
package actions

// Status classifies how a ticket was resolved.
type Status string

const (
	// StatusSuccess means the request was fulfilled end to end.
	StatusSuccess Status = "success"
	// StatusPending means the request was accepted but needs a human step.
	StatusPending Status = "pending"
	// StatusWarning means the request was understood but could not be
	// fulfilled as asked, such as an over-drawn leave balance.
	StatusWarning Status = "warning"
	// StatusInfo means the answer is informational only.
	StatusInfo Status = "info"
	// StatusNeedsClarification means the request could not be understood.
	StatusNeedsClarification Status = "needs_clarification"
)

// Detail is one labelled value shown back on the ticket.
type Detail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Details preserves insertion order so ticket notes render fields in the
// order handlers emit them.
type Details []Detail

// Add appends one key/value pair.
func (d *Details) Add(key, value string) {
	*d = append(*d, Detail{Key: key, Value: value})
}

// Get returns the first value stored under key.
func (d Details) Get(key string) (string, bool) {
	for _, item := range d {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

// Outcome is the result of executing one classified request. It is returned
// to the orchestration layer, reported on the ticket, and discarded.
type Outcome struct {
	Status         Status  `json:"status"`
	Message        string  `json:"message"`
	Details        Details `json:"details"`
	AttachmentPath string  `json:"attachmentPath,omitempty"`
	DownloadURL    string  `json:"downloadUrl,omitempty"`
}
