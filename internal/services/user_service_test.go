package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ren89/property-listing-app/internal/utils"
)

func setupUserServiceTest(t *testing.T) IUserService {
	db := utils.SetupTestDB(t, "user_service_test", usersCollection)
	return NewUserService(db)
}

func TestUserService_CreateAndGetByID(t *testing.T) {
	svc := setupUserServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "", "ana@example.com", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "ana@example.com", created.Email)
	assert.Equal(t, "Ana", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Email, found.Email)
}

func TestUserService_CreateWithCallerSuppliedID(t *testing.T) {
	svc := setupUserServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "account-123", "bo@example.com", "Bo")
	require.NoError(t, err)
	assert.Equal(t, "account-123", created.ID, "profile shares the account identity")
}

func TestUserService_CreateDuplicateEmailFails(t *testing.T) {
	svc := setupUserServiceTest(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "", "dup@example.com", "First")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "", "dup@example.com", "Second")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

func TestUserService_GetByEmail(t *testing.T) {
	svc := setupUserServiceTest(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "", "cy@example.com", "Cy")
	require.NoError(t, err)

	found, err := svc.GetUserByEmail(ctx, "cy@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, mongo.ErrNoDocuments))
}

func TestUserService_GetByIDNotFound(t *testing.T) {
	svc := setupUserServiceTest(t)

	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, mongo.ErrNoDocuments))
}
