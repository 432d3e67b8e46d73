package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/slicelab/pizza-shop-api/internal/models"
)

func setupClientDB(t *testing.T) (*gorm.DB, ClientService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.APIClient{}))
	return db, NewClientService(db)
}

func TestDeleteClientRemovesOwnedClient(t *testing.T) {
	db, clients := setupClientDB(t)

	require.NoError(t, clients.CreateClient(&models.APIClient{
		ID: "pos-1", Secret: "hash", Name: "POS", UserID: "user-1",
	}))

	require.NoError(t, clients.DeleteClient("pos-1", "user-1"))

	var count int64
	require.NoError(t, db.Model(&models.APIClient{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteClientUnknownOrForeignIsNotFound(t *testing.T) {
	_, clients := setupClientDB(t)

	require.NoError(t, clients.CreateClient(&models.APIClient{
		ID: "pos-1", Secret: "hash", Name: "POS", UserID: "user-1",
	}))

	assert.ErrorIs(t, clients.DeleteClient("nope", "user-1"), ErrClientNotFound)
	// Another user's client is indistinguishable from a missing one.
	assert.ErrorIs(t, clients.DeleteClient("pos-1", "user-2"), ErrClientNotFound)
}

func TestDeleteClientSurfacesStoreErrors(t *testing.T) {
	db, clients := setupClientDB(t)

	// A failing store must not be misreported as a missing client.
	require.NoError(t, db.Migrator().DropTable(&models.APIClient{}))

	err := clients.DeleteClient("pos-1", "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrClientNotFound)
}
