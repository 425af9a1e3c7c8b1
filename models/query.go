package models

import "time"

// AttributeType enum for different DynamoDB attribute types
type AttributeType int

const (
	StringType AttributeType = iota
	NumberType
	BinaryType
)

// QueryConfig holds all the configuration for a single-item lookup
type QueryConfig struct {
	TableName string
	IndexName string // empty for primary key queries
	KeyName   string
	KeyValue  string
	KeyType   AttributeType
}

// UniqueConstraint reserves Value for Field across a collection.
// Previous is the value being released when an existing document changes it.
type UniqueConstraint struct {
	Field    string
	Value    string
	Previous string
}

// DonationFilter narrows GET /donations.
// The date range only applies when both bounds are present.
type DonationFilter struct {
	Status    DonationStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// FoodFilter narrows GET /food; Search matches the name
type FoodFilter struct {
	Category FoodCategory
	Status   FoodStatus
	Search   string
}

// NGOFilter narrows GET /ngos; Search matches name, email or contact person name
type NGOFilter struct {
	Status NGOStatus
	Search string
}

// CommunicationFilter narrows GET /communications; Search matches subject, message, sender or recipient
type CommunicationFilter struct {
	Type     CommunicationType
	Status   CommunicationStatus
	Priority Priority
	Search   string
}

// Report facets accepted by POST /reports/custom
const (
	MetricDonations = "donations"
	MetricFood      = "food"
	MetricNGOs      = "ngos"
)

// CustomReportRequest is the body of POST /reports/custom
type CustomReportRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Metrics   []string  `json:"metrics"`
}

// Wants reports whether the facet was requested
func (r *CustomReportRequest) Wants(metric string) bool {
	for _, m := range r.Metrics {
		if m == metric {
			return true
		}
	}
	return false
}
