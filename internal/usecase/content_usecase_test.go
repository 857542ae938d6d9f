package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/pkg/errors"
)

func TestWebsiteContent_CreateAndDuplicate(t *testing.T) {
	activity := &recordingActivity{}
	uc := NewWebsiteContentUseCase(newFakeContentRepo(), activity)
	ctx := context.Background()
	actor := primitive.NewObjectID()

	in := ContentInput{Page: " Home ", SectionKey: "hero", Content: entity.Bilingual{En: "Welcome", Ta: "வணக்கம்"}}
	created, err := uc.Create(ctx, actor, in)
	require.NoError(t, err)
	assert.Equal(t, "home", created.Page)
	assert.Equal(t, entity.ContentTypeText, created.Type)
	assert.True(t, created.IsActive)
	assert.Equal(t, actor, *created.UpdatedBy)

	_, err = uc.Create(ctx, actor, in)
	require.Error(t, err)
	assert.Equal(t, 409, errors.StatusOf(err))

	assert.Equal(t, []string{entity.ActivityContentChanged}, activity.actions())
}

func TestWebsiteContent_Validation(t *testing.T) {
	uc := NewWebsiteContentUseCase(newFakeContentRepo(), nil)
	actor := primitive.NewObjectID()

	tests := []ContentInput{
		{Page: "home page", SectionKey: "hero", Content: entity.Bilingual{En: "x"}},
		{Page: "home", SectionKey: "", Content: entity.Bilingual{En: "x"}},
		{Page: "home", SectionKey: "hero", Type: "video", Content: entity.Bilingual{En: "x"}},
		{Page: "home", SectionKey: "banner", Type: entity.ContentTypeImage},
		{Page: "home", SectionKey: "hero", Content: entity.Bilingual{Ta: "தமிழ்"}},
	}
	for _, in := range tests {
		_, err := uc.Create(context.Background(), actor, in)
		assert.Equal(t, 400, errors.StatusOf(err), "%+v", in)
	}
}

func TestWebsiteContent_RequiredCannotBeDeleted(t *testing.T) {
	uc := NewWebsiteContentUseCase(newFakeContentRepo(), nil)
	ctx := context.Background()
	actor := primitive.NewObjectID()

	required, err := uc.Create(ctx, actor, ContentInput{Page: "home", SectionKey: "hero", Content: entity.Bilingual{En: "x"}, IsRequired: true})
	require.NoError(t, err)
	optional, err := uc.Create(ctx, actor, ContentInput{Page: "home", SectionKey: "news", Content: entity.Bilingual{En: "y"}})
	require.NoError(t, err)

	err = uc.Delete(ctx, actor, required.ID)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.Update(ctx, actor, required.ID, ContentInput{Page: "about", SectionKey: "hero", Content: entity.Bilingual{En: "x"}})
	assert.Equal(t, 400, errors.StatusOf(err))

	updated, err := uc.Update(ctx, actor, required.ID, ContentInput{Page: "home", SectionKey: "hero", Content: entity.Bilingual{En: "new"}})
	require.NoError(t, err)
	assert.True(t, updated.IsRequired)
	assert.Equal(t, "new", updated.Content.En)

	assert.NoError(t, uc.Delete(ctx, actor, optional.ID))
}

func TestWebsiteContent_PublicListIsActiveOnly(t *testing.T) {
	uc := NewWebsiteContentUseCase(newFakeContentRepo(), nil)
	ctx := context.Background()
	actor := primitive.NewObjectID()
	hidden := false

	_, err := uc.Create(ctx, actor, ContentInput{Page: "home", SectionKey: "hero", Content: entity.Bilingual{En: "x"}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, actor, ContentInput{Page: "home", SectionKey: "draft", Content: entity.Bilingual{En: "y"}, IsActive: &hidden})
	require.NoError(t, err)

	items, total, err := uc.List(ctx, ContentListInput{Page: "home"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "hero", items[0].SectionKey)

	_, total, err = uc.List(ctx, ContentListInput{Page: "home", IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, _, err = uc.List(ctx, ContentListInput{Sort: "secret"})
	assert.Equal(t, 400, errors.StatusOf(err))
}
