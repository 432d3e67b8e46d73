package services

import (
	"errors"
	"time"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when no Order matches the given ID.
var ErrOrderNotFound = errors.New("order not found")

// OrderService manages the order store
type OrderService interface {
	// CreateOrder persists a new Order linking a user to a pizza
	CreateOrder(userID, pizzaID string, placedAt time.Time) (models.Order, error)
	// ListByUserID retrieves every order placed by the given user
	ListByUserID(userID string) ([]models.Order, error)
	// GetByID retrieves a single order
	GetByID(id string) (models.Order, error)
}

type orderService struct {
	db *gorm.DB
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

func (s *orderService) CreateOrder(userID, pizzaID string, placedAt time.Time) (models.Order, error) {
	order := models.Order{
		UserID:   userID,
		PizzaID:  pizzaID,
		PlacedAt: placedAt,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *orderService) ListByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).Order("placed_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetByID(id string) (models.Order, error) {
	var order models.Order
	if err := s.db.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}
