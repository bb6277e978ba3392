package gallery_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/dbtest"
	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orders(imgs []models.GalleryImage) []int {
	out := make([]int, len(imgs))
	for i, img := range imgs {
		out[i] = img.Order
	}
	return out
}

func ids(imgs []models.GalleryImage) []int64 {
	out := make([]int64, len(imgs))
	for i, img := range imgs {
		out[i] = img.ID
	}
	return out
}

func TestGallery_CreateAssignsDenseOrder(t *testing.T) {
	db, m := dbtest.Open(t)
	repo := m.Gallery(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		img, err := repo.Create(ctx, &models.GalleryImage{Src: fmt.Sprintf("gallery/%d.jpg", i), Alt: "alt"})
		require.NoError(t, err)
		assert.Equal(t, i, img.Order)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, orders(all))
}

func TestGallery_CreateExplicitOrder(t *testing.T) {
	db, m := dbtest.Open(t)
	repo := m.Gallery(db)
	ctx := context.Background()

	img, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/a.jpg", Alt: "a", Order: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, img.Order)

	next, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/b.jpg", Alt: "b"})
	require.NoError(t, err)
	assert.Equal(t, 8, next.Order)
}

func TestGallery_DeleteLeavesGap(t *testing.T) {
	db, m := dbtest.Open(t)
	repo := m.Gallery(db)
	ctx := context.Background()

	var created []*models.GalleryImage
	for i := 0; i < 3; i++ {
		img, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/x.jpg", Alt: "x"})
		require.NoError(t, err)
		created = append(created, img)
	}

	ok, err := repo.Delete(ctx, created[1].ID)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, orders(all))
}

func TestGallery_Reorder(t *testing.T) {
	db, m := dbtest.Open(t)
	repo := m.Gallery(db)
	ctx := context.Background()

	for _, src := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/" + src, Alt: src})
		require.NoError(t, err)
	}

	require.NoError(t, repo.Reorder(ctx, []int64{2, 3, 1}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, ids(all))
	assert.Equal(t, []int{1, 2, 3}, orders(all))
}

func TestGallery_ReorderSkipsUnknownIDs(t *testing.T) {
	db, m := dbtest.Open(t)
	repo := m.Gallery(db)
	ctx := context.Background()

	for _, src := range []string{"a", "b"} {
		_, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/" + src, Alt: src})
		require.NoError(t, err)
	}

	require.NoError(t, repo.Reorder(ctx, []int64{99, 2}))

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Order)

	got, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Order)
}

func TestGallery_UpdateKeepsOrder(t *testing.T) {
	db, m := dbtest.Open(t)
	repo := m.Gallery(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/a.jpg", Alt: "a"})
	require.NoError(t, err)
	img, err := repo.Create(ctx, &models.GalleryImage{Src: "gallery/b.jpg", Alt: "b"})
	require.NoError(t, err)

	alt := "Bear carving"
	updated, err := repo.Update(ctx, img.ID, models.GalleryImagePatch{Alt: &alt})
	require.NoError(t, err)
	assert.Equal(t, "gallery/b.jpg", updated.Src)
	assert.Equal(t, alt, updated.Alt)
	assert.Equal(t, 2, updated.Order)
}

func TestGallery_CreateUsesSubqueryOnPostgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	q := regexp.QuoteMeta("INSERT INTO gallery (src, alt, order_position) VALUES ($1, $2, (SELECT COALESCE(MAX(order_position), 0) + 1 FROM gallery)) RETURNING id, src, alt, order_position")
	mock.ExpectQuery(q).WithArgs("gallery/x.webp", "X").
		WillReturnRows(sqlmock.NewRows([]string{"id", "src", "alt", "order_position"}).AddRow(1, "gallery/x.webp", "X", 1))

	repo := gallery.NewSQLRepository(db, dbx.Postgres)
	img, err := repo.Create(context.Background(), &models.GalleryImage{Src: "gallery/x.webp", Alt: "X"})
	require.NoError(t, err)
	assert.Equal(t, 1, img.Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}
