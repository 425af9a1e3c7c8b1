package models

import "time"

type NGOStatus string

const (
	NGOActive   NGOStatus = "active"
	NGOInactive NGOStatus = "inactive"
	NGOPending  NGOStatus = "pending"
)

func (s NGOStatus) Valid() bool {
	switch s {
	case NGOActive, NGOInactive, NGOPending:
		return true
	}
	return false
}

type Address struct {
	Street  string `json:"street,omitempty" dynamodbav:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" dynamodbav:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" dynamodbav:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" dynamodbav:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country string `json:"country,omitempty" dynamodbav:"country,omitempty" bson:"country,omitempty"`
}

type ContactPerson struct {
	Name     string `json:"name,omitempty" dynamodbav:"name,omitempty" bson:"name,omitempty"`
	Position string `json:"position,omitempty" dynamodbav:"position,omitempty" bson:"position,omitempty"`
	Phone    string `json:"phone,omitempty" dynamodbav:"phone,omitempty" bson:"phone,omitempty"`
	Email    string `json:"email,omitempty" dynamodbav:"email,omitempty" bson:"email,omitempty"`
}

// NGO is a partner organization receiving donations.
// Email and RegistrationNumber are unique across the collection.
type NGO struct {
	ID                    string        `json:"_id" dynamodbav:"id" bson:"_id"`
	Name                  string        `json:"name" dynamodbav:"name" bson:"name" validate:"required"`
	Email                 string        `json:"email" dynamodbav:"email" bson:"email" validate:"required,email"`
	Phone                 string        `json:"phone" dynamodbav:"phone" bson:"phone" validate:"required,tendigits"`
	Address               Address       `json:"address" dynamodbav:"address" bson:"address"`
	ContactPerson         ContactPerson `json:"contactPerson" dynamodbav:"contactPerson" bson:"contactPerson"`
	RegistrationNumber    string        `json:"registrationNumber" dynamodbav:"registrationNumber" bson:"registrationNumber" validate:"required"`
	Status                NGOStatus     `json:"status" dynamodbav:"status" bson:"status" validate:"required,oneof=active inactive pending"`
	ServiceAreas          []string      `json:"serviceAreas" dynamodbav:"serviceAreas" bson:"serviceAreas"`
	BeneficiariesCount    int           `json:"beneficiariesCount" dynamodbav:"beneficiariesCount" bson:"beneficiariesCount" validate:"gte=0"`
	VerificationDocuments []string      `json:"verificationDocuments" dynamodbav:"verificationDocuments" bson:"verificationDocuments"`
	Notes                 string        `json:"notes,omitempty" dynamodbav:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt             time.Time     `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// Summary returns the reference view embedded into donations
func (n *NGO) Summary(withEmail bool) *NGOSummary {
	s := &NGOSummary{ID: n.ID, Name: n.Name}
	if withEmail {
		s.Email = n.Email
	}
	return s
}
