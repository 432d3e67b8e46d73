package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slicelab/pizza-shop-api/internal/models"
	"github.com/slicelab/pizza-shop-api/internal/services"
)

// CatalogController serves the ordering screen's read channel: preset
// pizzas for everyone, plus the caller's own custom pizzas, customer
// record and orders when authenticated.
type CatalogController struct {
	catalog   services.CatalogService
	customers services.CustomerService
	orders    services.OrderService
}

// NewCatalogController creates a new instance of CatalogController
func NewCatalogController(
	catalog services.CatalogService,
	customers services.CustomerService,
	orders services.OrderService,
) *CatalogController {
	return &CatalogController{
		catalog:   catalog,
		customers: customers,
		orders:    orders,
	}
}

// GetCatalog godoc
// @Summary Get the order screen data
// @Description Get all preset pizzas; authenticated callers also receive their own custom pizzas, customer record and orders
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/catalog [get]
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	userID := c.GetString("userID")

	pizzas, err := cc.catalog.ListCatalog(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve pizzas"))
		return
	}

	resp := gin.H{"pizzas": pizzas}

	if userID != "" {
		customer, err := cc.customers.GetByUserID(userID)
		if err == nil {
			resp["customer"] = customer
		} else if !errors.Is(err, services.ErrCustomerNotFound) {
			c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve customer"))
			return
		}

		orders, err := cc.orders.ListByUserID(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve orders"))
			return
		}
		resp["orders"] = orders
	}

	c.JSON(http.StatusOK, resp)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza; custom pizzas are visible only to their owner
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id} [get]
func (cc *CatalogController) GetPizzaByID(c *gin.Context) {
	id := c.Param("id")

	pizza, err := cc.catalog.GetPizzaByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
		return
	}

	// A custom pizza outside the caller's ownership is indistinguishable
	// from a missing one.
	if pizza.Custom {
		userID := c.GetString("userID")
		if pizza.OwnerID == nil || *pizza.OwnerID != userID {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
			return
		}
	}

	c.JSON(http.StatusOK, pizza)
}
