package domain

import "time"

// ServiceType represents the service a contact request is about.
type ServiceType string

// Service types offered on the marketing site.
const (
	ServiceTypeTranslation   ServiceType = "translation"
	ServiceTypeTranscription ServiceType = "transcription"
	ServiceTypeVoiceOver     ServiceType = "voice-over"
)

// ContactMessage represents a submitted contact form entry.
type ContactMessage struct {
	ID          string      `json:"id"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	ServiceType ServiceType `json:"service_type"`
	Message     string      `json:"message"`
	ReceivedAt  time.Time   `json:"received_at"`
}
