package services

import (
	"errors"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// ErrClientNotFound is returned when no API client matches.
var ErrClientNotFound = errors.New("client not found")

// ClientService manages OAuth2 API clients for machine integrations
type ClientService interface {
	CreateClient(client *models.APIClient) error
	GetClientsByUserID(userID string) ([]models.APIClient, error)
	GetClientByID(id string) (*models.APIClient, error)
	DeleteClient(clientID, userID string) error
}

type clientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) ClientService {
	return &clientService{db: db}
}

func (s *clientService) CreateClient(client *models.APIClient) error {
	return s.db.Create(client).Error
}

func (s *clientService) GetClientsByUserID(userID string) ([]models.APIClient, error) {
	var clients []models.APIClient
	if err := s.db.Where("user_id = ?", userID).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *clientService) GetClientByID(id string) (*models.APIClient, error) {
	var client models.APIClient
	if err := s.db.Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientService) DeleteClient(clientID, userID string) error {
	result := s.db.Where("id = ? AND user_id = ?", clientID, userID).Delete(&models.APIClient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
