package models

import "time"

// DonationStatus is the lifecycle state of a donation
type DonationStatus string

const (
	DonationPending     DonationStatus = "pending"
	DonationAccepted    DonationStatus = "accepted"
	DonationRejected    DonationStatus = "rejected"
	DonationDistributed DonationStatus = "distributed"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationAccepted, DonationRejected, DonationDistributed:
		return true
	}
	return false
}

// DonationItem is one line of a donation
type DonationItem struct {
	ItemName string   `json:"itemName" dynamodbav:"itemName" bson:"itemName" validate:"required"`
	Quantity *float64 `json:"quantity" dynamodbav:"quantity" bson:"quantity" validate:"required,gte=0"`
	Unit     string   `json:"unit" dynamodbav:"unit" bson:"unit" validate:"required"`
}

// Qty returns the line quantity, 0 when unset
func (i DonationItem) Qty() float64 {
	if i.Quantity == nil {
		return 0
	}
	return *i.Quantity
}

// Donation is a gift of food from a donor, optionally routed to an NGO
type Donation struct {
	ID              string         `json:"_id" dynamodbav:"id" bson:"_id"`
	DonorName       string         `json:"donorName" dynamodbav:"donorName" bson:"donorName" validate:"required"`
	FoodItems       []DonationItem `json:"foodItems" dynamodbav:"foodItems" bson:"foodItems" validate:"dive"`
	DonationDate    time.Time      `json:"donationDate" dynamodbav:"donationDate" bson:"donationDate"`
	Status          DonationStatus `json:"status" dynamodbav:"status" bson:"status" validate:"required,oneof=pending accepted rejected distributed"`
	NGOID           string         `json:"ngoId,omitempty" dynamodbav:"ngoId,omitempty" bson:"ngoId,omitempty"`
	Notes           string         `json:"notes,omitempty" dynamodbav:"notes,omitempty" bson:"notes,omitempty"`
	CarbonFootprint float64        `json:"carbonFootprint" dynamodbav:"carbonFootprint" bson:"carbonFootprint"`
	CreatedAt       time.Time      `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// TotalQuantity sums the quantities of every line item
func (d *Donation) TotalQuantity() float64 {
	total := 0.0
	for _, item := range d.FoodItems {
		total += item.Qty()
	}
	return total
}

// NGOSummary is the subset of an NGO embedded into donation responses
type NGOSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PopulatedDonation is a donation whose ngoId reference has been resolved.
// The NGO field shadows Donation.NGOID in JSON output.
type PopulatedDonation struct {
	Donation
	NGO *NGOSummary `json:"ngoId"`
}
