package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
	"github.com/critiq-labs/review-service/internal/validator"
)

func newTitleFixture(t *testing.T) (TitleService, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	svc := NewTitleService(repo, newTestValidator(t), quietLogger())
	return svc, repo
}

func TestCreateTitleResolvesSlugs(t *testing.T) {
	svc, repo := newTitleFixture(t)
	ctx := context.Background()
	admin := seedUser(t, repo, "admin", models.RoleAdmin)
	category, genre := seedCatalog(t, repo)

	title, err := svc.CreateTitle(ctx, admin, validator.TitleCreateRequest{
		Name:     "The Long Winter",
		Year:     2019,
		Category: category.Slug,
		Genre:    []string{genre.Slug},
	})
	require.NoError(t, err)
	require.NotNil(t, title.CategoryID)
	assert.Equal(t, category.ID, *title.CategoryID)
	require.Len(t, title.Genres, 1)
	assert.Equal(t, genre.Slug, title.Genres[0].Slug)
}

func TestCreateTitleUnknownCategory(t *testing.T) {
	svc, repo := newTitleFixture(t)
	admin := seedUser(t, repo, "admin", models.RoleAdmin)
	_, genre := seedCatalog(t, repo)

	_, err := svc.CreateTitle(context.Background(), admin, validator.TitleCreateRequest{
		Name:     "Nowhere",
		Year:     2019,
		Category: "missing",
		Genre:    []string{genre.Slug},
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "category", errs[0].Field)
	assert.Equal(t, "exists", errs[0].Rule)
}

func TestCreateTitleUnknownGenre(t *testing.T) {
	svc, repo := newTitleFixture(t)
	admin := seedUser(t, repo, "admin", models.RoleAdmin)
	category, _ := seedCatalog(t, repo)

	_, err := svc.CreateTitle(context.Background(), admin, validator.TitleCreateRequest{
		Name:     "Nowhere",
		Year:     2019,
		Category: category.Slug,
		Genre:    []string{"missing"},
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "genre", errs[0].Field)
}

func TestCreateTitleFutureYear(t *testing.T) {
	svc, repo := newTitleFixture(t)
	admin := seedUser(t, repo, "admin", models.RoleAdmin)
	category, genre := seedCatalog(t, repo)

	_, err := svc.CreateTitle(context.Background(), admin, validator.TitleCreateRequest{
		Name:     "From the Future",
		Year:     time.Now().Year() + 1,
		Category: category.Slug,
		Genre:    []string{genre.Slug},
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "year", errs[0].Field)
}

func TestUpdateTitlePartial(t *testing.T) {
	svc, repo := newTitleFixture(t)
	ctx := context.Background()
	admin := seedUser(t, repo, "admin", models.RoleAdmin)
	category, genre := seedCatalog(t, repo)

	title, err := svc.CreateTitle(ctx, admin, validator.TitleCreateRequest{
		Name:     "Draft Name",
		Year:     2018,
		Category: category.Slug,
		Genre:    []string{genre.Slug},
	})
	require.NoError(t, err)

	name := "Final Name"
	updated, err := svc.UpdateTitle(ctx, admin, title.ID, validator.TitleUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Final Name", updated.Name)
	assert.Equal(t, 2018, updated.Year, "unset fields stay untouched")
}

func TestUpdateTitleRequiresAdmin(t *testing.T) {
	svc, repo := newTitleFixture(t)
	regular := seedUser(t, repo, "viewer", models.RoleUser)
	title := seedTitle(t, repo, "Locked")

	name := "Hijacked"
	_, err := svc.UpdateTitle(context.Background(), regular, title.ID, validator.TitleUpdateRequest{Name: &name})
	var permErr *PermissionError
	assert.ErrorAs(t, err, &permErr)
}

func TestTitleRatingIsMeanOfReviewScores(t *testing.T) {
	svc, repo := newTitleFixture(t)
	ctx := context.Background()
	title := seedTitle(t, repo, "Rated")
	alice := seedUser(t, repo, "alice", models.RoleUser)
	bob := seedUser(t, repo, "bob", models.RoleUser)

	require.NoError(t, repo.Review().Create(ctx, &models.Review{
		TitleID: title.ID, AuthorID: alice.ID, Text: "fine", Score: 4,
	}))
	require.NoError(t, repo.Review().Create(ctx, &models.Review{
		TitleID: title.ID, AuthorID: bob.ID, Text: "great", Score: 8,
	}))

	got, err := svc.GetTitle(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 6.0, *got.Rating, 0.001)

	listed, _, err := svc.ListTitles(ctx, repositories.TitleFilters{Limit: 100})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Rating)
	assert.InDelta(t, 6.0, *listed[0].Rating, 0.001)
}

func TestTitleRatingAbsentWithoutReviews(t *testing.T) {
	svc, repo := newTitleFixture(t)
	title := seedTitle(t, repo, "Unrated")

	got, err := svc.GetTitle(context.Background(), title.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

func TestGetTitleNotFound(t *testing.T) {
	svc, _ := newTitleFixture(t)

	_, err := svc.GetTitle(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestDeleteTitle(t *testing.T) {
	svc, repo := newTitleFixture(t)
	ctx := context.Background()
	admin := seedUser(t, repo, "admin", models.RoleAdmin)
	title := seedTitle(t, repo, "Short Lived")

	require.NoError(t, svc.DeleteTitle(ctx, admin, title.ID))
	assert.ErrorIs(t, svc.DeleteTitle(ctx, admin, title.ID), ErrTitleNotFound)
}
