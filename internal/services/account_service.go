package services

import (
	"errors"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when registration collides with an existing account.
var ErrEmailTaken = errors.New("email already registered")

// AccountService owns login credentials and user identities
type AccountService interface {
	// Register creates a new user account with a hashed password
	Register(email, password, name string) (*models.User, error)
	// RegisterWithPlaceholder creates a new account plus an empty Customer
	// profile tied to it, for the standalone signup screen
	RegisterWithPlaceholder(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

type accountService struct {
	db        *gorm.DB
	customers CustomerService
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(db *gorm.DB, customers CustomerService) AccountService {
	return &accountService{db: db, customers: customers}
}

func (s *accountService) Register(email, password, name string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     "customer",
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) RegisterWithPlaceholder(email, password, name string) (*models.User, error) {
	user, err := s.Register(email, password, name)
	if err != nil {
		return nil, err
	}

	// Every registered user gets a blank Customer profile they can fill in
	// later from the profile screen.
	if _, err := s.customers.CreateCustomer(models.Customer{UserID: user.ID, Name: name}); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *accountService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
