package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/services"
	"github.com/slicelab/pizza-shop-api/internal/workflows"
)

// ProfileController serves the account/profile screen: the caller's owned
// pizzas, Customer record and Orders, plus contact-info edits.
type ProfileController struct {
	workflow  *workflows.ProfileWorkflow
	catalog   services.CatalogService
	customers services.CustomerService
	orders    services.OrderService
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(
	workflow *workflows.ProfileWorkflow,
	catalog services.CatalogService,
	customers services.CustomerService,
	orders services.OrderService,
) *ProfileController {
	return &ProfileController{
		workflow:  workflow,
		catalog:   catalog,
		customers: customers,
		orders:    orders,
	}
}

// GetProfile godoc
// @Summary Get the caller's pizza profile
// @Description Get the authenticated user's own pizzas, customer record and orders
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	pizzas, err := pc.catalog.ListOwnedPizzas(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve pizzas"))
		return
	}

	orders, err := pc.orders.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve orders"))
		return
	}

	resp := gin.H{
		"pizzas": pizzas,
		"orders": orders,
	}

	// A user registered through the order flow without contact data may not
	// have a Customer record yet; the profile still renders.
	customer, err := pc.customers.GetByUserID(userID)
	if err == nil {
		resp["customer"] = customer
	} else if !errors.Is(err, services.ErrCustomerNotFound) {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve customer"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateCustomer godoc
// @Summary Update contact information
// @Description Overwrite the authenticated user's customer contact record
// @Tags profile
// @Accept json
// @Produce json
// @Param customer body workflows.ContactInfo true "Contact information"
// @Success 200 {object} map[string]string "ID of the updated customer document"
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/customers [put]
func (pc *ProfileController) UpdateCustomer(c *gin.Context) {
	var contact workflows.ContactInfo
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	// Customers are keyed by the caller's own identity; editing another
	// user's record is not possible through this endpoint.
	update := workflows.CustomerUpdate{
		UserID:      c.GetString("userID"),
		ContactInfo: contact,
	}

	id, err := pc.workflow.UpdateCustomer(c.Request.Context(), update)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customerId": id})
}
