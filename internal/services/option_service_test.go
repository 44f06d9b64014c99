package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkcd/smart-bulk-password-reset/internal/models"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

func TestOptionService_RoundTrip(t *testing.T) {
	db := utils.SetupTestDB(t, "bulkreset_test_options", "options")
	defer utils.TeardownTestDB(t, db)

	svc := NewOptionService(db)
	ctx := context.Background()

	templates := []models.EmailTemplate{
		{ID: "A1B2C3D4E5", Name: "First", Subject: "s1", Body: "b1"},
		{ID: "F6G7H8J9K0", Name: "Second", Subject: "s2", Body: "b2"},
	}
	require.NoError(t, svc.Set(ctx, "email_templates", templates))

	var loaded []models.EmailTemplate
	require.NoError(t, svc.Get(ctx, "email_templates", &loaded))
	assert.Equal(t, templates, loaded)
}

func TestOptionService_GetMissing(t *testing.T) {
	db := utils.SetupTestDB(t, "bulkreset_test_options", "options")
	defer utils.TeardownTestDB(t, db)

	svc := NewOptionService(db)

	var out string
	err := svc.Get(context.Background(), "never_set", &out)
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestOptionService_GetString(t *testing.T) {
	db := utils.SetupTestDB(t, "bulkreset_test_options", "options")
	defer utils.TeardownTestDB(t, db)

	svc := NewOptionService(db)
	ctx := context.Background()

	assert.Equal(t, "fallback", svc.GetString(ctx, "default_subject", "fallback"))

	require.NoError(t, svc.Set(ctx, "default_subject", "Stored subject"))
	assert.Equal(t, "Stored subject", svc.GetString(ctx, "default_subject", "fallback"))
}

func TestOptionService_SetReplacesValue(t *testing.T) {
	db := utils.SetupTestDB(t, "bulkreset_test_options", "options")
	defer utils.TeardownTestDB(t, db)

	svc := NewOptionService(db)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "default_subject", "first"))
	require.NoError(t, svc.Set(ctx, "default_subject", "second"))

	var out string
	require.NoError(t, svc.Get(ctx, "default_subject", &out))
	assert.Equal(t, "second", out)
}

func TestOptionService_Delete(t *testing.T) {
	db := utils.SetupTestDB(t, "bulkreset_test_options", "options")
	defer utils.TeardownTestDB(t, db)

	svc := NewOptionService(db)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "default_subject", "value"))
	require.NoError(t, svc.Delete(ctx, "default_subject"))

	var out string
	assert.ErrorIs(t, svc.Get(ctx, "default_subject", &out), ErrOptionNotFound)

	// Deleting again is not an error.
	require.NoError(t, svc.Delete(ctx, "default_subject"))
}
