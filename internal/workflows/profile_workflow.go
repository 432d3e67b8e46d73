package workflows

import (
	"context"
	"errors"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/services"
)

// ProfileWorkflow validates and applies edits to a Customer record.
type ProfileWorkflow struct {
	customers services.CustomerService
	events    EventPublisher
}

// NewProfileWorkflow creates a new instance of ProfileWorkflow
func NewProfileWorkflow(customers services.CustomerService, events EventPublisher) *ProfileWorkflow {
	return &ProfileWorkflow{customers: customers, events: events}
}

// UpdateCustomer overwrites the contact fields of the Customer identified
// by update.UserID and returns the affected document's ID. A payload that
// fails schema validation never reaches the store; an update against a
// user without a Customer record is an explicit NotFoundError.
func (w *ProfileWorkflow) UpdateCustomer(ctx context.Context, update CustomerUpdate) (string, error) {
	if err := update.Validate(); err != nil {
		return "", err
	}

	id, err := w.customers.UpdateContactInfo(models.Customer{
		UserID:           update.UserID,
		Name:             update.Name,
		Telephone:        update.Telephone,
		StreetAddress:    update.StreetAddress,
		SecondaryAddress: update.SecondaryAddress,
		City:             update.City,
		State:            update.State,
		ZipCode:          update.ZipCode,
	})
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			return "", &NotFoundError{Entity: "customer", Key: update.UserID}
		}
		return "", &StoreWriteError{Step: "customer", Err: err}
	}

	if w.events != nil {
		if customer, err := w.customers.GetByUserID(update.UserID); err == nil {
			w.events.CustomerUpdated(customer)
		}
	}

	return id, nil
}
