package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/services"
)

func setupProfileWorkflow(t *testing.T) (*gorm.DB, *ProfileWorkflow, services.CustomerService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Customer{})
	require.NoError(t, err)

	customers := services.NewCustomerService(db)
	return db, NewProfileWorkflow(customers, nil), customers
}

func validUpdate(userID string) CustomerUpdate {
	return CustomerUpdate{
		UserID: userID,
		ContactInfo: ContactInfo{
			Name:          "Grace Hopper",
			Telephone:     "555-0199",
			StreetAddress: "2 Compiler Court",
			City:          "Arlington",
			State:         "VA",
			ZipCode:       "22201",
		},
	}
}

func TestUpdateCustomerOverwritesContactFields(t *testing.T) {
	db, workflow, customers := setupProfileWorkflow(t)

	created, err := customers.CreateCustomer(models.Customer{
		UserID:           "user-1",
		Name:             "Old Name",
		Telephone:        "000",
		StreetAddress:    "Old Street",
		SecondaryAddress: "Apt 9",
		City:             "Old City",
		State:            "OS",
		ZipCode:          "00000",
	})
	require.NoError(t, err)

	id, err := workflow.UpdateCustomer(context.Background(), validUpdate("user-1"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	var updated models.Customer
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&updated).Error)

	// Submitted fields are overwritten in place.
	assert.Equal(t, "Grace Hopper", updated.Name)
	assert.Equal(t, "555-0199", updated.Telephone)
	assert.Equal(t, "2 Compiler Court", updated.StreetAddress)
	assert.Equal(t, "", updated.SecondaryAddress)

	// Identity fields are untouched.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "user-1", updated.UserID)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateCustomerResubmitUnchangedValuesSucceeds(t *testing.T) {
	_, workflow, customers := setupProfileWorkflow(t)

	created, err := customers.CreateCustomer(models.Customer{UserID: "user-1", Name: "Old Name"})
	require.NoError(t, err)

	// Submitting the exact same payload twice rewrites the row with
	// identical values; the second submission must still succeed, not be
	// mistaken for a missing customer.
	id, err := workflow.UpdateCustomer(context.Background(), validUpdate("user-1"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	id, err = workflow.UpdateCustomer(context.Background(), validUpdate("user-1"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

func TestUpdateCustomerMissingUserIsNotFound(t *testing.T) {
	_, workflow, _ := setupProfileWorkflow(t)

	_, err := workflow.UpdateCustomer(context.Background(), validUpdate("nobody"))

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "customer", notFoundErr.Entity)
	assert.Equal(t, "nobody", notFoundErr.Key)
}

func TestUpdateCustomerValidatesBeforeStore(t *testing.T) {
	db, workflow, customers := setupProfileWorkflow(t)

	_, err := customers.CreateCustomer(models.Customer{UserID: "user-1", Name: "Keep Me"})
	require.NoError(t, err)

	update := validUpdate("user-1")
	update.Telephone = ""

	_, err = workflow.UpdateCustomer(context.Background(), update)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// The rejected payload never reached the store.
	var current models.Customer
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&current).Error)
	assert.Equal(t, "Keep Me", current.Name)
}
