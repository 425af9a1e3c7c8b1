package models

import "time"

type FoodCategory string

const (
	CategoryGrains     FoodCategory = "grains"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryFruits     FoodCategory = "fruits"
	CategoryDairy      FoodCategory = "dairy"
	CategoryProtein    FoodCategory = "protein"
	CategoryOther      FoodCategory = "other"
)

func (c FoodCategory) Valid() bool {
	switch c {
	case CategoryGrains, CategoryVegetables, CategoryFruits, CategoryDairy, CategoryProtein, CategoryOther:
		return true
	}
	return false
}

// FoodStatus is maintained by operators; it is never derived from expiryDate
type FoodStatus string

const (
	FoodAvailable FoodStatus = "available"
	FoodLow       FoodStatus = "low"
	FoodExpired   FoodStatus = "expired"
)

func (s FoodStatus) Valid() bool {
	switch s {
	case FoodAvailable, FoodLow, FoodExpired:
		return true
	}
	return false
}

type NutritionalInfo struct {
	Calories float64 `json:"calories" dynamodbav:"calories" bson:"calories"`
	Protein  float64 `json:"protein" dynamodbav:"protein" bson:"protein"`
	Carbs    float64 `json:"carbs" dynamodbav:"carbs" bson:"carbs"`
	Fats     float64 `json:"fats" dynamodbav:"fats" bson:"fats"`
}

// FoodItem is a unit of inventory
type FoodItem struct {
	ID              string           `json:"_id" dynamodbav:"id" bson:"_id"`
	Name            string           `json:"name" dynamodbav:"name" bson:"name" validate:"required"`
	Category        FoodCategory     `json:"category" dynamodbav:"category" bson:"category" validate:"required,oneof=grains vegetables fruits dairy protein other"`
	Quantity        *float64         `json:"quantity" dynamodbav:"quantity" bson:"quantity" validate:"required"`
	Unit            string           `json:"unit" dynamodbav:"unit" bson:"unit" validate:"required"`
	ExpiryDate      time.Time        `json:"expiryDate" dynamodbav:"expiryDate" bson:"expiryDate" validate:"required"`
	Status          FoodStatus       `json:"status" dynamodbav:"status" bson:"status" validate:"required,oneof=available low expired"`
	Notes           string           `json:"notes,omitempty" dynamodbav:"notes,omitempty" bson:"notes,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty" dynamodbav:"nutritionalInfo,omitempty" bson:"nutritionalInfo,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" dynamodbav:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" dynamodbav:"updatedAt" bson:"updatedAt"`
}

// Qty returns the quantity, 0 when unset
func (f *FoodItem) Qty() float64 {
	if f.Quantity == nil {
		return 0
	}
	return *f.Quantity
}
