package workflows

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/services"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// EventPublisher receives store mutations for fan-out to subscribed
// clients. A nil publisher disables fan-out (used in tests).
type EventPublisher interface {
	PizzaCreated(pizza models.Pizza)
	OrderCreated(order models.Order)
	CustomerUpdated(customer models.Customer)
}

// OrderWorkflow is the only trusted write path for placing orders. It
// materializes, in dependency order, every entity an order needs: an
// account for a registering guest, a Customer profile, a custom Pizza,
// and finally the Order itself.
type OrderWorkflow struct {
	accounts  services.AccountService
	customers services.CustomerService
	catalog   services.CatalogService
	orders    services.OrderService
	events    EventPublisher
}

// NewOrderWorkflow creates a new instance of OrderWorkflow
func NewOrderWorkflow(
	accounts services.AccountService,
	customers services.CustomerService,
	catalog services.CatalogService,
	orders services.OrderService,
	events EventPublisher,
) *OrderWorkflow {
	return &OrderWorkflow{
		accounts:  accounts,
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		events:    events,
	}
}

// PlaceOrder runs the order placement sequence and returns the new Order's
// ID. Steps run strictly in order because each depends on an identifier
// produced by the one before it:
//
//  1. credentials present -> register a new account, yielding the userId
//  2. resolve the userId (step 1 or the authenticated caller)
//  3. inline contact record -> persist a new Customer for that userId
//  4. inline custom spec -> persist a new custom Pizza owned by that
//     userId, else verify the referenced catalog pizza exists
//  5. persist the Order
//
// On failure the error identifies the failing step. Earlier successful
// steps are NOT rolled back; an account or profile created before the
// failure remains and is logged as orphaned.
func (w *OrderWorkflow) PlaceOrder(ctx context.Context, req OrderRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	// Step 1: account creation for a registering guest.
	var userID string
	accountCreated := false
	if req.Credentials != nil {
		user, err := w.accounts.Register(req.Credentials.Email, req.Credentials.Password, req.Customer.Profile.Name)
		if err != nil {
			return "", &AccountCreationError{Email: req.Credentials.Email, Err: err}
		}
		userID = user.ID
		accountCreated = true
	} else {
		// Step 2: fall back to the caller's authenticated identity.
		userID = req.Customer.UserID
	}

	// Step 3: persist the inline contact record, if any.
	if req.Customer.Profile != nil {
		p := req.Customer.Profile
		_, err := w.customers.CreateCustomer(models.Customer{
			UserID:           userID,
			Name:             p.Name,
			Telephone:        p.Telephone,
			StreetAddress:    p.StreetAddress,
			SecondaryAddress: p.SecondaryAddress,
			City:             p.City,
			State:            p.State,
			ZipCode:          p.ZipCode,
		})
		if err != nil {
			w.logOrphans(userID, accountCreated, false, "")
			return "", &StoreWriteError{Step: "customer", Err: err}
		}
	}

	// Step 4: resolve the pizza, creating it first when it is custom.
	var pizzaID string
	if req.Pizza.Custom != nil {
		spec := req.Pizza.Custom
		pizza, err := w.catalog.CreateCustomPizza(models.Pizza{
			Name:     spec.Name,
			Crust:    spec.Crust,
			Sauce:    spec.Sauce,
			Size:     spec.Size,
			Toppings: spec.Toppings,
		}, userID)
		if err != nil {
			w.logOrphans(userID, accountCreated, req.Customer.Profile != nil, "")
			return "", &StoreWriteError{Step: "pizza", Err: err}
		}
		pizzaID = pizza.ID
		if w.events != nil {
			w.events.PizzaCreated(pizza)
		}
	} else {
		pizza, err := w.catalog.GetPizzaByID(req.Pizza.PizzaID)
		if err != nil {
			if errors.Is(err, services.ErrPizzaNotFound) {
				w.logOrphans(userID, accountCreated, req.Customer.Profile != nil, "")
				return "", &NotFoundError{Entity: "pizza", Key: req.Pizza.PizzaID}
			}
			return "", &StoreWriteError{Step: "pizza", Err: err}
		}
		pizzaID = pizza.ID
	}

	// Step 5: the order itself, only after everything it references exists.
	order, err := w.orders.CreateOrder(userID, pizzaID, time.Now().UTC())
	if err != nil {
		w.logOrphans(userID, accountCreated, req.Customer.Profile != nil, pizzaID)
		return "", &StoreWriteError{Step: "order", Err: err}
	}

	if w.events != nil {
		w.events.OrderCreated(order)
	}

	log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"pizza_id": pizzaID,
	}).Info("Order placed")

	return order.ID, nil
}

// logOrphans records which entities a failed request already committed.
// There is no compensating rollback; the partial writes stay.
func (w *OrderWorkflow) logOrphans(userID string, account, customer bool, pizzaID string) {
	if !account && !customer && pizzaID == "" {
		return
	}
	log.WithFields(logrus.Fields{
		"user_id":         userID,
		"orphan_account":  account,
		"orphan_customer": customer,
		"orphan_pizza_id": pizzaID,
	}).Warn("Order placement failed after partial writes; earlier entities were kept")
}
