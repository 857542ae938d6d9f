package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/utils"
)

func TestBuildOrderFilter(t *testing.T) {
	uid := primitive.NewObjectID()
	q := buildOrderFilter(repository.OrderFilter{
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusVerified,
		CustomerID:    uid,
		Search:        "TLS1",
	})

	assert.Equal(t, entity.OrderStatusPending, q["status"])
	assert.Equal(t, entity.PaymentStatusVerified, q["payment.status"])
	assert.Equal(t, uid, q["customer.userId"])

	or, ok := q["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 3)
}

func TestBuildOrderFilter_Empty(t *testing.T) {
	assert.Empty(t, buildOrderFilter(repository.OrderFilter{Search: "   "}))
}

func TestBuildCatalogFilter(t *testing.T) {
	featured := true
	q := buildCatalogFilter(repository.CatalogFilter{
		ActiveOnly: true,
		Category:   "poetry",
		Featured:   &featured,
		Search:     "a.b",
	})

	assert.Equal(t, true, q["active"])
	assert.Equal(t, "poetry", q["category"])
	assert.Equal(t, true, q["featured"])

	or := q["$or"].(bson.A)
	first := or[0].(bson.M)["title.en"].(primitive.Regex)
	assert.Equal(t, `a\.b`, first.Pattern)
	assert.Equal(t, "i", first.Options)
}

func TestBuildProgramFilter(t *testing.T) {
	q := buildProgramFilter(repository.ProgramFilter{PublishedOnly: true, Bureau: "arts", Status: entity.ProgramStatusOngoing})

	assert.Equal(t, true, q["published"])
	assert.Equal(t, "arts", q["bureau"])
	assert.Equal(t, entity.ProgramStatusOngoing, q["status"])
	assert.NotContains(t, q, "$or")
}

func TestBuildContentFilter(t *testing.T) {
	q := buildContentFilter(repository.ContentFilter{Page: "home", ActiveOnly: true})

	assert.Equal(t, bson.M{"page": "home", "isActive": true}, q)
}

func TestFindOptions(t *testing.T) {
	fo := findOptions(repository.ListOptions{
		Sort:   utils.SortSpec{Field: "price", Desc: false},
		Limit:  10,
		Offset: 20,
	})

	require.NotNil(t, fo.Limit)
	require.NotNil(t, fo.Skip)
	assert.Equal(t, int64(10), *fo.Limit)
	assert.Equal(t, int64(20), *fo.Skip)
	assert.Equal(t, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}, fo.Sort)
}

func TestFindOptions_DefaultSort(t *testing.T) {
	fo := findOptions(repository.ListOptions{})

	assert.Nil(t, fo.Limit)
	assert.Nil(t, fo.Skip)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, fo.Sort)
}
