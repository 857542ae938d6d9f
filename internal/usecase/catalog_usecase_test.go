package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/pkg/errors"
)

func TestCreateBook_RequiresEnglishTitle(t *testing.T) {
	uc, _ := newFakeCatalog()

	_, err := uc.CreateBook(context.Background(), primitive.NewObjectID(), CatalogInput{
		Title:    entity.Bilingual{Ta: "திருக்குறள்"},
		Category: "classics",
	})
	require.Error(t, err)
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestGetBook_HidesInactiveFromPublic(t *testing.T) {
	uc, _ := newFakeCatalog()
	ctx := context.Background()
	inactive := false

	book, err := uc.CreateBook(ctx, primitive.NewObjectID(), CatalogInput{
		Title:    entity.Bilingual{En: "Draft"},
		Category: "classics",
		Active:   &inactive,
	})
	require.NoError(t, err)

	_, err = uc.GetBook(ctx, book.ID, false)
	assert.Equal(t, 404, errors.StatusOf(err))

	got, err := uc.GetBook(ctx, book.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title.En)
}

func TestResolveProduct(t *testing.T) {
	uc, _ := newFakeCatalog()
	ctx := context.Background()
	inactive := false

	active, err := uc.CreateBook(ctx, primitive.NewObjectID(), CatalogInput{Title: entity.Bilingual{En: "Kural"}, Category: "classics", Price: 120})
	require.NoError(t, err)
	hidden, err := uc.CreateBook(ctx, primitive.NewObjectID(), CatalogInput{Title: entity.Bilingual{En: "Hidden"}, Category: "classics", Active: &inactive})
	require.NoError(t, err)

	product, err := uc.ResolveProduct(ctx, entity.ProductTypeBook, active.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, product.Price)
	assert.Equal(t, "Kural", product.Title)

	_, err = uc.ResolveProduct(ctx, entity.ProductTypeBook, hidden.ID)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.ResolveProduct(ctx, entity.ProductTypeEbook, active.ID)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.ResolveProduct(ctx, "vinyl", active.ID)
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestParseExportFields(t *testing.T) {
	fields, err := ParseExportFields("")
	require.NoError(t, err)
	assert.Equal(t, defaultBookExportFields, fields)

	fields, err = ParseExportFields(" title_en, price ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"title_en", "price"}, fields)

	_, err = ParseExportFields("title_en,password")
	require.Error(t, err)
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestExportBooks(t *testing.T) {
	uc, _ := newFakeCatalog()
	ctx := context.Background()

	_, err := uc.CreateBook(ctx, primitive.NewObjectID(), CatalogInput{
		Title:    entity.Bilingual{En: "Kural, Vol. 1", Ta: "குறள்"},
		Category: "classics",
		Price:    120,
		Stock:    3,
	})
	require.NoError(t, err)

	csvOut, err := uc.ExportBooks(ctx, "csv", "title_en,title_ta,price,stock")
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", csvOut.ContentType)
	assert.True(t, strings.HasSuffix(csvOut.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(csvOut.Body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "title_en,title_ta,price,stock", lines[0])
	assert.Equal(t, `"Kural, Vol. 1",குறள்,120.00,3`, lines[1])

	jsonOut, err := uc.ExportBooks(ctx, "json", "title_en")
	require.NoError(t, err)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(jsonOut.Body, &rows))
	assert.Equal(t, []map[string]string{{"title_en": "Kural, Vol. 1"}}, rows)

	_, err = uc.ExportBooks(ctx, "xml", "")
	assert.Equal(t, 400, errors.StatusOf(err))
}
