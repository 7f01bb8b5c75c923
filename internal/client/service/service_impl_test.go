package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/disenolab/cotiza/internal/client/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupClientTest(t *testing.T) clientdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clientdomain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestClientCRUD(t *testing.T) {
	svc := setupClientTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", clientdomain.UpsertClientRequest{
		Name:    "  Estudio Luna  ",
		Email:   "hola@estudioluna.mx",
		Company: "Estudio Luna SA",
	})
	require.NoError(t, err)
	assert.Equal(t, "Estudio Luna", created.Name)

	fetched, err := svc.Get(ctx, "user-1", created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	updated, err := svc.Update(ctx, "user-1", created.ID.String(), clientdomain.UpsertClientRequest{
		Name:  "Estudio Luna",
		Phone: "+52 55 1234 5678",
	})
	require.NoError(t, err)
	assert.Equal(t, "+52 55 1234 5678", updated.Phone)

	require.NoError(t, svc.Delete(ctx, "user-1", created.ID.String()))

	_, err = svc.Get(ctx, "user-1", created.ID.String())
	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)
}

func TestClientCreate_RequiresName(t *testing.T) {
	svc := setupClientTest(t)

	_, err := svc.Create(context.Background(), "user-1", clientdomain.UpsertClientRequest{})
	assert.ErrorIs(t, err, clientdomain.ErrMissingName)
}

func TestClientList_ScopedToOwner(t *testing.T) {
	svc := setupClientTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", clientdomain.UpsertClientRequest{Name: "Zeta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", clientdomain.UpsertClientRequest{Name: "Alfa"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", clientdomain.UpsertClientRequest{Name: "Otro"})
	require.NoError(t, err)

	clients, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Alfa", clients[0].Name)
	assert.Equal(t, "Zeta", clients[1].Name)
}

func TestClientGet_OtherOwnerNotVisible(t *testing.T) {
	svc := setupClientTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", clientdomain.UpsertClientRequest{Name: "Privado"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-2", created.ID.String())
	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)
}
