package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/brandvoice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBrandRepo(db)
	ctx := context.Background()

	brand := testutil.NewTestBrand("u1", "Acme", testutil.WithIndustry("tech"), testutil.WithDescription("B2B SaaS"))
	require.NoError(t, repo.Create(ctx, brand))

	fetched, err := repo.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)
	assert.Equal(t, "u1", fetched.OwnerID)
	assert.Equal(t, "tech", fetched.Industry)
	assert.Equal(t, "B2B SaaS", fetched.Description)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestBrandRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBrandRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBrandRepo_ListByOwner_ScopesToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBrandRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestBrand("u1", "Acme")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestBrand("u1", "Beta")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestBrand("u2", "Other")))

	brands, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, brands, 2)
	for _, b := range brands {
		assert.Equal(t, "u1", b.OwnerID)
	}
}

func TestBrandRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteBrandRepo(db)
	ctx := context.Background()

	brand := testutil.NewTestBrand("u1", "Acme")
	require.NoError(t, repo.Create(ctx, brand))

	brand.Website = "https://acme.test"
	require.NoError(t, repo.Update(ctx, brand))
	fetched, err := repo.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test", fetched.Website)

	require.NoError(t, repo.Delete(ctx, brand.ID))
	assert.ErrorIs(t, repo.Delete(ctx, brand.ID), ErrNotFound)
}

func TestBrandRepo_DeleteClearsProjectBrand(t *testing.T) {
	db := testutil.NewTestDB(t)
	brands := NewSQLiteBrandRepo(db)
	projects := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	brand := testutil.NewTestBrand("u1", "Acme")
	require.NoError(t, brands.Create(ctx, brand))
	proj := testutil.NewTestProject("u1", "Launch", testutil.WithBrandID(brand.ID))
	require.NoError(t, projects.Create(ctx, proj))

	require.NoError(t, brands.Delete(ctx, brand.ID))

	fetched, err := projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.BrandID)
}
