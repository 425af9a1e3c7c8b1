package models

import "time"

type CommunicationType string

const (
	CommunicationEmail        CommunicationType = "email"
	CommunicationNotification CommunicationType = "notification"
	CommunicationMessage      CommunicationType = "message"
)

func (t CommunicationType) Valid() bool {
	switch t {
	case CommunicationEmail, CommunicationNotification, CommunicationMessage:
		return true
	}
	return false
}

type CommunicationStatus string

const (
	CommunicationSent      CommunicationStatus = "sent"
	CommunicationDelivered CommunicationStatus = "delivered"
	CommunicationRead      CommunicationStatus = "read"
	CommunicationFailed    CommunicationStatus = "failed"
)

func (s CommunicationStatus) Valid() bool {
	switch s {
	case CommunicationSent, CommunicationDelivered, CommunicationRead, CommunicationFailed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Attachment struct {
	Filename string `json:"filename" dynamodbav:"filename" bson:"filename"`
	Path     string `json:"path" dynamodbav:"path" bson:"path"`
	Type     string `json:"type" dynamodbav:"type" bson:"type"`
}

type CommunicationMetadata struct {
	IP        string `json:"ip,omitempty" dynamodbav:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent string `json:"userAgent,omitempty" dynamodbav:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Location  string `json:"location,omitempty" dynamodbav:"location,omitempty" bson:"location,omitempty"`
}

// Communication is a message exchanged with a partner
type Communication struct {
	ID          string                 `json:"_id" dynamodbav:"id" bson:"_id"`
	Sender      string                 `json:"sender" dynamodbav:"sender" bson:"sender" validate:"required"`
	Recipient   string                 `json:"recipient" dynamodbav:"recipient" bson:"recipient" validate:"required"`
	Subject     string                 `json:"subject" dynamodbav:"subject" bson:"subject" validate:"required"`
	Message     string                 `json:"message" dynamodbav:"message" bson:"message" validate:"required"`
	Type        CommunicationType      `json:"type" dynamodbav:"type" bson:"type" validate:"required,oneof=email notification message"`
	Status      CommunicationStatus    `json:"status" dynamodbav:"status" bson:"status" validate:"required,oneof=sent delivered read failed"`
	Priority    Priority               `json:"priority" dynamodbav:"priority" bson:"priority" validate:"required,oneof=low medium high"`
	Attachments []Attachment           `json:"attachments" dynamodbav:"attachments" bson:"attachments"`
	Metadata    *CommunicationMetadata `json:"metadata,omitempty" dynamodbav:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}
