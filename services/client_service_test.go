package services

import (
	"testing"

	"oficina.app/models"
	"oficina.app/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUniqueDocument(t *testing.T) {
	svc := NewClientService(newTestDB(t), newTestBus())

	_, err := svc.Create(testCtx(), CreateClientInput{Name: "Maria", Document: "111"})
	require.NoError(t, err)

	_, err = svc.Create(testCtx(), CreateClientInput{Name: "Other Maria", Document: "111"})
	assert.ErrorIs(t, err, ErrClientDocumentTaken)
}

func TestClientUpdateKeepsOwnDocument(t *testing.T) {
	svc := NewClientService(newTestDB(t), newTestBus())

	client, err := svc.Create(testCtx(), CreateClientInput{Name: "Maria", Document: "111"})
	require.NoError(t, err)

	// re-submitting the same document must not collide with itself
	doc := "111"
	name := "Maria Souza"
	updated, err := svc.Update(testCtx(), client.ID, UpdateClientInput{Name: &name, Document: &doc})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", updated.Name)
}

func TestClientDefaultsToIndividual(t *testing.T) {
	svc := NewClientService(newTestDB(t), newTestBus())

	client, err := svc.Create(testCtx(), CreateClientInput{Name: "Oficina Ltda", Document: "222"})
	require.NoError(t, err)
	assert.Equal(t, models.ClientIndividual, client.Kind)

	_, err = svc.Create(testCtx(), CreateClientInput{Name: "X", Document: "333", Kind: "partnership"})
	assert.ErrorIs(t, err, ErrClientBadKind)
}

func TestClientDeleteCascadesVehicles(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(db, newTestBus())
	client, vehicle := seedClientAndVehicle(t, db)

	require.NoError(t, svc.Delete(testCtx(), client.ID))

	var count int64
	require.NoError(t, db.Model(&models.Vehicle{}).Where("id = ?", vehicle.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err := svc.FindByID(testCtx(), client.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
