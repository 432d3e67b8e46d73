package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/workflows"
)

// OrderController handles order placement requests
type OrderController struct {
	workflow *workflows.OrderWorkflow
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(workflow *workflows.OrderWorkflow) *OrderController {
	return &OrderController{workflow: workflow}
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Place an order for a catalog or custom pizza, optionally registering a new account
// @Tags orders
// @Accept json
// @Produce json
// @Param order body workflows.OrderRequest true "Order request"
// @Success 201 {object} map[string]string "ID of the created order"
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/orders [post]
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var req workflows.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	// The customer reference always comes from the session, never from the
	// request body, so a caller cannot order on behalf of another user.
	if userID := c.GetString("userID"); userID != "" {
		req.Customer = workflows.CustomerSelection{UserID: userID}
		req.Credentials = nil
	} else {
		req.Customer.UserID = ""
	}

	orderID, err := oc.workflow.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
}

// respondWorkflowError maps typed workflow errors onto HTTP responses.
func respondWorkflowError(c *gin.Context, err error) {
	var (
		validationErr *workflows.ValidationError
		accountErr    *workflows.AccountCreationError
		notFoundErr   *workflows.NotFoundError
		storeErr      *workflows.StoreWriteError
	)

	switch {
	case errors.Is(err, workflows.ErrNoPizzaSelected):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrNoPizzaSelected, "Make sure to pick a pizza!"))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, validationErr.Error()))
	case errors.As(err, &accountErr):
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrAccountCreation, accountErr.Error()))
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, notFoundErr.Error()))
	case errors.As(err, &storeErr):
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrStoreWrite, "Failed to save order"))
	default:
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Unexpected error"))
	}
}
