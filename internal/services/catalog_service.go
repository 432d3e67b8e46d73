package services

import (
	"errors"

	"github.com/slicelab/pizza-shop-api/internal/models"
	"gorm.io/gorm"
)

// CustomPizzaPrice is the canonical price, in minor currency units, charged
// for every customer-built pizza. Custom pizzas are flat-priced regardless
// of toppings.
const CustomPizzaPrice = 10000

// ErrPizzaNotFound is returned when a referenced catalog entry does not exist.
var ErrPizzaNotFound = errors.New("pizza not found")

// CatalogService provides scoped access to the pizza catalog
type CatalogService interface {
	// ListCatalog retrieves the pizzas visible to the given user: every
	// preset pizza, plus the caller's own custom pizzas when ownerID is
	// non-empty. Anonymous callers (ownerID == "") never see custom pizzas.
	ListCatalog(ownerID string) ([]models.Pizza, error)
	// ListOwnedPizzas retrieves only the pizzas authored by the given user
	ListOwnedPizzas(ownerID string) ([]models.Pizza, error)
	// GetPizzaByID retrieves a single pizza by its ID
	GetPizzaByID(id string) (models.Pizza, error)
	// CreateCustomPizza persists a customer-authored pizza owned by ownerID
	CreateCustomPizza(pizza models.Pizza, ownerID string) (models.Pizza, error)
	// Seed inserts the preset catalog, skipping any preset that already
	// exists by name, so repeated startups never duplicate entries
	Seed() error
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) ListCatalog(ownerID string) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	query := s.db.Where("custom = ?", false)
	if ownerID != "" {
		query = s.db.Where("custom = ?", false).Or("custom = ? AND owner_id = ?", true, ownerID)
	}
	if err := query.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *catalogService) ListOwnedPizzas(ownerID string) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Where("owner_id = ?", ownerID).Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *catalogService) GetPizzaByID(id string) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.Where("id = ?", id).First(&pizza).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, ErrPizzaNotFound
		}
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *catalogService) CreateCustomPizza(pizza models.Pizza, ownerID string) (models.Pizza, error) {
	pizza.ID = ""
	pizza.Custom = true
	pizza.OwnerID = &ownerID
	pizza.Price = CustomPizzaPrice
	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

// presetPizzas is the shop's fixed starting catalog.
var presetPizzas = []models.Pizza{
	{
		Name:  "Classic Supreme",
		Crust: "Thin",
		Sauce: "Tomato",
		Size:  14,
		Price: 10000,
		Toppings: models.Toppings{
			Meats:    []string{"Sausage", "Pepperoni"},
			NonMeats: []string{"Green Peppers", "Mushrooms", "Black Olives", "Onions"},
		},
	},
	{
		Name:  "Chicago",
		Crust: "Deep Dish",
		Sauce: "Robust Tomato",
		Size:  12,
		Price: 15000,
		Toppings: models.Toppings{
			Meats:    []string{"Pepperoni"},
			NonMeats: []string{"Banana Peppers", "Green Peppers", "Mushrooms", "Black Olives", "Onions"},
		},
	},
	{
		Name:  "Classic Pepperoni",
		Crust: "Regular",
		Sauce: "Tomato",
		Size:  12,
		Price: 10000,
		Toppings: models.Toppings{
			Meats:    []string{"Pepperoni"},
			NonMeats: []string{},
		},
	},
}

func (s *catalogService) Seed() error {
	for _, preset := range presetPizzas {
		var existing models.Pizza
		err := s.db.Where("name = ? AND custom = ?", preset.Name, false).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.db.Create(&preset).Error; err != nil {
			return err
		}
	}
	return nil
}
