package workflows

import (
	"github.com/go-playground/validator/v10"
	"github.com/slicelab/pizza-shop-api/internal/models"
)

// validate is the shared validator for workflow inputs. Validation here is
// deliberately independent of the persistence layer so the rules can be
// tested without a database.
var validate = validator.New()

// CustomPizzaSpec is the inline specification of a customer-built pizza.
// Its price is fixed at services.CustomPizzaPrice and never taken from input.
type CustomPizzaSpec struct {
	Name     string          `json:"name" validate:"required"`
	Crust    string          `json:"crust" validate:"required"`
	Sauce    string          `json:"sauce" validate:"required"`
	Size     int             `json:"size" validate:"required,gt=0"`
	Toppings models.Toppings `json:"toppings"`
}

// PizzaSelection is a tagged variant: a reference to an existing catalog
// pizza by ID, or an inline custom specification. Exactly one side may be
// set; the zero value means no pizza was selected.
type PizzaSelection struct {
	PizzaID string           `json:"pizzaId,omitempty"`
	Custom  *CustomPizzaSpec `json:"custom,omitempty"`
}

// IsZero reports whether no pizza has been selected.
func (s PizzaSelection) IsZero() bool {
	return s.PizzaID == "" && s.Custom == nil
}

// ContactInfo is a customer's contact and delivery record as submitted by
// a form. SecondaryAddress is the only optional field.
type ContactInfo struct {
	Name             string `json:"name" validate:"required"`
	Telephone        string `json:"telephone" validate:"required"`
	StreetAddress    string `json:"streetAddress" validate:"required"`
	SecondaryAddress string `json:"secondaryAddress"`
	City             string `json:"city" validate:"required"`
	State            string `json:"state" validate:"required"`
	ZipCode          string `json:"zipCode" validate:"required"`
}

// CustomerSelection is a tagged variant: a reference to an existing
// authenticated user, or an inline contact record for a guest converting
// to a member while ordering.
type CustomerSelection struct {
	UserID  string       `json:"userId,omitempty"`
	Profile *ContactInfo `json:"profile,omitempty"`
}

// Credentials carry the email and password of a guest registering a new
// account as part of placing an order.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// OrderRequest is the full order draft submitted to PlaceOrder. The
// presentation layer passes it by value; no shared state is consulted.
type OrderRequest struct {
	Pizza       PizzaSelection    `json:"pizza"`
	Customer    CustomerSelection `json:"customer"`
	Credentials *Credentials      `json:"credentials,omitempty"`
}

// Validate checks the whole request before any store or account call. The
// no-pizza precondition is checked first so an empty submission fails with
// ErrNoPizzaSelected regardless of what else is wrong.
func (r *OrderRequest) Validate() error {
	if r.Pizza.IsZero() {
		return ErrNoPizzaSelected
	}
	if r.Pizza.PizzaID != "" && r.Pizza.Custom != nil {
		return &ValidationError{Field: "pizza", Reason: "selection must be a reference or an inline spec, not both"}
	}
	if r.Pizza.Custom != nil {
		if err := validate.Struct(r.Pizza.Custom); err != nil {
			return &ValidationError{Field: "pizza.custom", Reason: err.Error()}
		}
	}

	if r.Customer.UserID != "" && r.Customer.Profile != nil {
		return &ValidationError{Field: "customer", Reason: "selection must be a reference or an inline record, not both"}
	}
	if r.Customer.UserID == "" && r.Customer.Profile == nil {
		return &ValidationError{Field: "customer", Reason: "missing customer"}
	}
	if r.Customer.Profile != nil {
		if err := validate.Struct(r.Customer.Profile); err != nil {
			return &ValidationError{Field: "customer.profile", Reason: err.Error()}
		}
	}

	if r.Credentials != nil {
		if err := validate.Struct(r.Credentials); err != nil {
			return &ValidationError{Field: "credentials", Reason: err.Error()}
		}
	}

	// A guest submitting an inline profile must also register; an existing
	// user must not re-register.
	if r.Customer.Profile != nil && r.Credentials == nil {
		return &ValidationError{Field: "credentials", Reason: "required when ordering as a new customer"}
	}
	if r.Customer.UserID != "" && r.Credentials != nil {
		return &ValidationError{Field: "credentials", Reason: "not allowed for an existing user"}
	}

	return nil
}

// CustomerUpdate is the full contact payload accepted by UpdateCustomer.
type CustomerUpdate struct {
	UserID      string `json:"userId" validate:"required"`
	ContactInfo        // embedded; validated field by field
}

// Validate checks the update payload without consulting the store.
func (u *CustomerUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return &ValidationError{Field: "customer", Reason: err.Error()}
	}
	return nil
}
