package services

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/critiq-labs/review-service/internal/models"
	"github.com/critiq-labs/review-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository used by the service
// tests.
type fakeRepository struct {
	categories *fakeCategoryRepo
	genres     *fakeGenreRepo
	titles     *fakeTitleRepo
	reviews    *fakeReviewRepo
	comments   *fakeCommentRepo
	users      *fakeUserRepo
}

func newFakeRepository() *fakeRepository {
	r := &fakeRepository{}
	r.categories = &fakeCategoryRepo{}
	r.genres = &fakeGenreRepo{}
	r.comments = &fakeCommentRepo{}
	r.reviews = &fakeReviewRepo{comments: r.comments}
	r.titles = &fakeTitleRepo{reviews: r.reviews}
	r.users = &fakeUserRepo{}
	return r
}

func (r *fakeRepository) Category() repositories.CategoryRepository { return r.categories }
func (r *fakeRepository) Genre() repositories.GenreRepository       { return r.genres }
func (r *fakeRepository) Title() repositories.TitleRepository       { return r.titles }
func (r *fakeRepository) Review() repositories.ReviewRepository     { return r.reviews }
func (r *fakeRepository) Comment() repositories.CommentRepository   { return r.comments }
func (r *fakeRepository) User() repositories.UserRepository         { return r.users }

func (r *fakeRepository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(context.Context) error { return nil }
func (r *fakeRepository) Close() error               { return nil }

type fakeCategoryRepo struct {
	items  []*models.Category
	nextID uint
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	for _, c := range f.items {
		if c.Slug == category.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	category.ID = f.nextID
	f.items = append(f.items, category)
	return nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.items {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context, filters repositories.CatalogFilters) ([]*models.Category, int64, error) {
	var out []*models.Category
	for _, c := range f.items {
		if filters.Query == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(filters.Query)) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, slug string) error {
	for i, c := range f.items {
		if c.Slug == slug {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeGenreRepo struct {
	items  []*models.Genre
	nextID uint
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *models.Genre) error {
	for _, g := range f.items {
		if g.Slug == genre.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	genre.ID = f.nextID
	f.items = append(f.items, genre)
	return nil
}

func (f *fakeGenreRepo) GetBySlug(_ context.Context, slug string) (*models.Genre, error) {
	for _, g := range f.items {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGenreRepo) GetBySlugs(_ context.Context, slugs []string) ([]models.Genre, error) {
	var out []models.Genre
	for _, slug := range slugs {
		g, err := f.GetBySlug(context.Background(), slug)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeGenreRepo) List(_ context.Context, filters repositories.CatalogFilters) ([]*models.Genre, int64, error) {
	var out []*models.Genre
	for _, g := range f.items {
		if filters.Query == "" || strings.Contains(strings.ToLower(g.Name), strings.ToLower(filters.Query)) {
			out = append(out, g)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeGenreRepo) Delete(_ context.Context, slug string) error {
	for i, g := range f.items {
		if g.Slug == slug {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeTitleRepo struct {
	items   []*models.Title
	nextID  uint
	reviews *fakeReviewRepo
}

// withRating fills the read-only rating column the way the store computes it,
// the mean review score or nil when the title has no reviews.
func (f *fakeTitleRepo) withRating(title *models.Title) *models.Title {
	var sum, count int
	for _, r := range f.reviews.items {
		if r.TitleID == title.ID {
			sum += r.Score
			count++
		}
	}
	if count == 0 {
		title.Rating = nil
		return title
	}
	rating := float64(sum) / float64(count)
	title.Rating = &rating
	return title
}

func (f *fakeTitleRepo) Create(_ context.Context, title *models.Title) error {
	f.nextID++
	title.ID = f.nextID
	f.items = append(f.items, title)
	return nil
}

func (f *fakeTitleRepo) GetByID(_ context.Context, id uint) (*models.Title, error) {
	for _, t := range f.items {
		if t.ID == id {
			return f.withRating(t), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTitleRepo) List(_ context.Context, filters repositories.TitleFilters) ([]*models.Title, int64, error) {
	var out []*models.Title
	for _, t := range f.items {
		if filters.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filters.Name)) {
			continue
		}
		if filters.Year != nil && t.Year != *filters.Year {
			continue
		}
		out = append(out, f.withRating(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeTitleRepo) Update(context.Context, *models.Title) error { return nil }

func (f *fakeTitleRepo) ReplaceGenres(_ context.Context, title *models.Title, genres []models.Genre) error {
	title.Genres = genres
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uint) error {
	for i, t := range f.items {
		if t.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeReviewRepo struct {
	items    []*models.Review
	nextID   uint
	comments *fakeCommentRepo
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	for _, r := range f.items {
		if r.TitleID == review.TitleID && r.AuthorID == review.AuthorID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	review.ID = f.nextID
	f.items = append(f.items, review)
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, titleID, id uint) (*models.Review, error) {
	for _, r := range f.items {
		if r.ID == id && r.TitleID == titleID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) ListByTitle(_ context.Context, titleID uint, _ repositories.PageFilters) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, r := range f.items {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) Update(context.Context, *models.Review) error { return nil }

func (f *fakeReviewRepo) Delete(ctx context.Context, review *models.Review) error {
	for i, r := range f.items {
		if r.ID == review.ID {
			if err := f.comments.DeleteByReview(ctx, review.ID); err != nil {
				return err
			}
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) ExistsByTitleAndAuthor(_ context.Context, titleID, authorID uint) (bool, error) {
	for _, r := range f.items {
		if r.TitleID == titleID && r.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	items  []*models.Comment
	nextID uint
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.items = append(f.items, comment)
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, reviewID, id uint) (*models.Comment, error) {
	for _, c := range f.items {
		if c.ID == id && c.ReviewID == reviewID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) ListByReview(_ context.Context, reviewID uint, _ repositories.PageFilters) ([]*models.Comment, int64, error) {
	var out []*models.Comment
	for _, c := range f.items {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCommentRepo) Update(context.Context, *models.Comment) error { return nil }

func (f *fakeCommentRepo) Delete(_ context.Context, id uint) error {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCommentRepo) DeleteByReview(_ context.Context, reviewID uint) error {
	var kept []*models.Comment
	for _, c := range f.items {
		if c.ReviewID != reviewID {
			kept = append(kept, c)
		}
	}
	f.items = kept
	return nil
}

type fakeUserRepo struct {
	items  []*models.User
	nextID uint
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.items {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.items = append(f.items, user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.items {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsernameAndEmail(_ context.Context, username, email string) (*models.User, error) {
	for _, u := range f.items {
		if u.Username == username && u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindPartialMatches(_ context.Context, username, email string) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.items {
		if (u.Username == username && u.Email != email) || (u.Email == email && u.Username != username) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.items {
		if filters.Query == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(filters.Query)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(context.Context, *models.User) error { return nil }

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	for i, u := range f.items {
		if u.Username == username {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
