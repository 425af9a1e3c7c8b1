package services

import (
	"fooddonation-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 {
	return &v
}

func validNGO() *models.NGO {
	return &models.NGO{
		Name:               "Feed",
		Email:              "team@feed.org",
		Phone:              "5551234567",
		RegistrationNumber: "R-1",
		Status:             models.NGOPending,
	}
}

func requireValidation(t *testing.T, err error, field string, kind models.ValidationKind) {
	t.Helper()
	ve, ok := models.IsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, field, ve.Field)
	assert.Equal(t, kind, ve.Kind)
	assert.NotEmpty(t, ve.Message)
}

func TestValidateNGO(t *testing.T) {
	assert.NoError(t, validateEntity(validNGO()))

	ngo := validNGO()
	ngo.Email = "not-an-email"
	requireValidation(t, validateEntity(ngo), "email", models.ValidationEmail)

	ngo = validNGO()
	ngo.Phone = "555-123-4567"
	requireValidation(t, validateEntity(ngo), "phone", models.ValidationPhone)

	ngo = validNGO()
	ngo.RegistrationNumber = ""
	requireValidation(t, validateEntity(ngo), "registrationNumber", models.ValidationRequired)

	ngo = validNGO()
	ngo.Status = "archived"
	requireValidation(t, validateEntity(ngo), "status", models.ValidationEnum)

	ngo = validNGO()
	ngo.BeneficiariesCount = -1
	requireValidation(t, validateEntity(ngo), "beneficiariesCount", models.ValidationMin)
}

func TestPhoneOnlyNeedsTenDigitRun(t *testing.T) {
	ngo := validNGO()
	ngo.Phone = "+1 (call) 5551234567 ext 9"
	assert.NoError(t, validateEntity(ngo))
}

func TestValidateDonationItems(t *testing.T) {
	d := &models.Donation{
		DonorName: "Ana",
		Status:    models.DonationPending,
		FoodItems: []models.DonationItem{{ItemName: "Rice", Quantity: f64(0), Unit: "kg"}},
	}
	assert.NoError(t, validateEntity(d))

	d.FoodItems = append(d.FoodItems, models.DonationItem{ItemName: "Beans", Quantity: f64(2)})
	requireValidation(t, validateEntity(d), "foodItems[1].unit", models.ValidationRequired)

	d.FoodItems[1] = models.DonationItem{ItemName: "Beans", Quantity: f64(-2), Unit: "kg"}
	requireValidation(t, validateEntity(d), "foodItems[1].quantity", models.ValidationMin)

	d.FoodItems[1] = models.DonationItem{ItemName: "Beans", Unit: "kg"}
	requireValidation(t, validateEntity(d), "foodItems[1].quantity", models.ValidationRequired)
}

func TestValidateFoodRequiresExpiry(t *testing.T) {
	item := &models.FoodItem{Name: "Milk", Category: models.CategoryDairy, Quantity: f64(1), Unit: "l", Status: models.FoodAvailable}
	requireValidation(t, validateEntity(item), "expiryDate", models.ValidationRequired)

	item.ExpiryDate = time.Now()
	assert.NoError(t, validateEntity(item))

	item.Category = "snacks"
	requireValidation(t, validateEntity(item), "category", models.ValidationEnum)
}

func TestValidateFoodAllowsNegativeStock(t *testing.T) {
	item := &models.FoodItem{Name: "Rice", Category: models.CategoryGrains, Quantity: f64(-3), Unit: "kg", Status: models.FoodAvailable, ExpiryDate: time.Now()}
	assert.NoError(t, validateEntity(item))

	item.Quantity = nil
	requireValidation(t, validateEntity(item), "quantity", models.ValidationRequired)
}

func TestValidateCommunication(t *testing.T) {
	comm := &models.Communication{
		Sender: "ops", Recipient: "a", Subject: "s", Message: "m",
		Type: models.CommunicationEmail, Status: models.CommunicationSent, Priority: "urgent",
	}
	requireValidation(t, validateEntity(comm), "priority", models.ValidationEnum)
}

func TestMergePatchKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	existing := &models.FoodItem{ID: "f1", Name: "Milk", Category: models.CategoryDairy, Quantity: f64(1), Unit: "l", CreatedAt: created}

	out := &models.FoodItem{}
	err := mergePatch(existing, []byte(`{"_id":"other","name":"Oat milk","quantity":4,"createdAt":"2030-01-01T00:00:00Z"}`), out)

	require.NoError(t, err)
	assert.Equal(t, "f1", out.ID)
	assert.Equal(t, "Oat milk", out.Name)
	assert.Equal(t, 4.0, out.Qty())
	assert.Equal(t, models.CategoryDairy, out.Category)
	assert.True(t, created.Equal(out.CreatedAt))
}

func TestMergePatchRejectsWrongTypes(t *testing.T) {
	existing := &models.FoodItem{ID: "f1", Name: "Milk"}

	err := mergePatch(existing, []byte(`{"quantity":"lots"}`), &models.FoodItem{})
	requireValidation(t, err, "quantity", models.ValidationFormat)

	err = mergePatch(existing, []byte(`[1,2]`), &models.FoodItem{})
	requireValidation(t, err, "body", models.ValidationFormat)
}
