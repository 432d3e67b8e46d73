package services

import (
	"errors"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound is returned when no Customer matches the given user.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCustomerExists is returned when a second Customer would be created
	// for the same user.
	ErrCustomerExists = errors.New("customer already exists for user")
)

// CustomerService manages customer contact profiles
type CustomerService interface {
	// CreateCustomer persists a new Customer tied to its UserID.
	// At most one Customer may exist per user.
	CreateCustomer(customer models.Customer) (models.Customer, error)
	// GetByUserID retrieves the Customer belonging to the given user
	GetByUserID(userID string) (models.Customer, error)
	// UpdateContactInfo overwrites the contact fields of the Customer keyed
	// by customer.UserID, leaving everything else untouched. Returns the
	// updated document's ID, or ErrCustomerNotFound if no Customer matches.
	UpdateContactInfo(customer models.Customer) (string, error)
}

type customerService struct {
	db *gorm.DB
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(db *gorm.DB) CustomerService {
	return &customerService{db: db}
}

func (s *customerService) CreateCustomer(customer models.Customer) (models.Customer, error) {
	customer.ID = ""
	if err := s.db.Create(&customer).Error; err != nil {
		// The unique index on user_id is the authority on one-per-user; a
		// rejected insert that lost a race still reports ErrCustomerExists,
		// not a raw constraint violation.
		var existing models.Customer
		if lookupErr := s.db.Where("user_id = ?", customer.UserID).First(&existing).Error; lookupErr == nil {
			return models.Customer{}, ErrCustomerExists
		}
		return models.Customer{}, err
	}
	return customer, nil
}

func (s *customerService) GetByUserID(userID string) (models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, ErrCustomerNotFound
		}
		return models.Customer{}, err
	}
	return customer, nil
}

func (s *customerService) UpdateContactInfo(customer models.Customer) (string, error) {
	// Partial overwrite of the listed contact fields only. ID, UserID and
	// CreatedAt are never touched by an update.
	result := s.db.Model(&models.Customer{}).
		Where("user_id = ?", customer.UserID).
		Updates(map[string]interface{}{
			"name":              customer.Name,
			"telephone":         customer.Telephone,
			"street_address":    customer.StreetAddress,
			"secondary_address": customer.SecondaryAddress,
			"city":              customer.City,
			"state":             customer.State,
			"zip_code":          customer.ZipCode,
		})
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", ErrCustomerNotFound
	}

	var updated models.Customer
	if err := s.db.Where("user_id = ?", customer.UserID).First(&updated).Error; err != nil {
		return "", err
	}
	return updated.ID, nil
}
