package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBrief(t *testing.T, conn db.DBTX) *domain.Brief {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("u1", "Spring launch")
	require.NoError(t, NewSQLiteProjectRepo(conn).Create(ctx, proj))
	brief := testutil.NewTestBrief(proj.ID, testutil.WithBeneficiaries("busy parents"))
	require.NoError(t, NewSQLiteBriefRepo(conn).Create(ctx, brief))
	return brief
}

func TestProjectRepo_ListByOwnerAndNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("u1", "A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("u2", "B")))

	projects, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "A", projects[0].Name)
	assert.Empty(t, projects[0].BrandID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBriefRepo_CreateGetUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBriefRepo(database)
	ctx := context.Background()

	brief := seedBrief(t, database)

	fetched, err := repo.GetByID(ctx, brief.ID)
	require.NoError(t, err)
	assert.Equal(t, brief.Purpose, fetched.Purpose)
	assert.Equal(t, "busy parents", fetched.Beneficiaries)

	fetched.CallToAction = "Shop now"
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, brief.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop now", again.CallToAction)

	list, err := repo.ListByProject(ctx, brief.ProjectID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBriefRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := NewSQLiteBriefRepo(database).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAudienceRepo_ReplaceForBrief(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAudienceRepo(database)
	ctx := context.Background()
	brief := seedBrief(t, database)

	first := []*domain.AudienceSegment{testutil.NewTestAudience("Busy Parents"), testutil.NewTestAudience("Weekend Hikers")}
	require.NoError(t, repo.ReplaceForBrief(ctx, brief.ID, first))

	second := []*domain.AudienceSegment{testutil.NewTestAudience("City Commuters")}
	require.NoError(t, repo.ReplaceForBrief(ctx, brief.ID, second))

	segs, err := repo.ListByBrief(ctx, brief.ID)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "City Commuters", segs[0].Title)
	assert.Equal(t, brief.ID, segs[0].BriefID)
	assert.Equal(t, 0, segs[0].Position)
}

func TestAudienceRepo_ListByBrief_PreservesOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAudienceRepo(database)
	ctx := context.Background()
	brief := seedBrief(t, database)

	segs := []*domain.AudienceSegment{
		testutil.NewTestAudience("Zeta Buyers"),
		testutil.NewTestAudience("Alpha Buyers"),
		testutil.NewTestAudience("Mid Buyers"),
	}
	require.NoError(t, repo.ReplaceForBrief(ctx, brief.ID, segs))

	got, err := repo.ListByBrief(ctx, brief.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Zeta Buyers", "Alpha Buyers", "Mid Buyers"},
		[]string{got[0].Title, got[1].Title, got[2].Title})
}

func TestAudienceRepo_ReplaceRollsBackInsideUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	brief := seedBrief(t, database)

	original := []*domain.AudienceSegment{testutil.NewTestAudience("Busy Parents")}
	require.NoError(t, NewSQLiteAudienceRepo(database).ReplaceForBrief(ctx, brief.ID, original))

	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteAudienceRepo(tx).ReplaceForBrief(ctx, brief.ID, []*domain.AudienceSegment{
			testutil.NewTestAudience("New One"),
			testutil.NewTestAudience("New Two"),
		})
	})
	require.ErrorIs(t, err, injected)

	segs, err := NewSQLiteAudienceRepo(database).ListByBrief(ctx, brief.ID)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "Busy Parents", segs[0].Title)
}
