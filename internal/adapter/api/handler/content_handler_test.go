package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/usecase"
)

func TestContent_PublicListLocalizes(t *testing.T) {
	repo := &memoryContent{sections: []*entity.WebsiteContent{
		{Page: "home", SectionKey: "hero", Type: entity.ContentTypeText, IsActive: true,
			Content: entity.Bilingual{En: "Welcome", Ta: "வணக்கம்"}},
		{Page: "home", SectionKey: "draft", Type: entity.ContentTypeText, IsActive: false,
			Content: entity.Bilingual{En: "Hidden"}},
	}}
	h := NewContentHandler(usecase.NewWebsiteContentUseCase(repo, nil))

	e := newEcho()
	e.GET("/api/website-content", h.ListPublic)

	rec := serve(e, http.MethodGet, "/api/website-content?page=home&lang=ta", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, repo.filter.ActiveOnly)
	assert.Equal(t, "home", repo.filter.Page)

	env := decode(t, rec)
	var sections []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &sections))
	require.Len(t, sections, 1)
	assert.Equal(t, "வணக்கம்", sections[0]["content"])
	assert.Equal(t, "ta", sections[0]["lang"])
	assert.Equal(t, int64(1), env.Pagination.Total)

	rec = serve(e, http.MethodGet, "/api/website-content?page=home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"content":{"en":"Welcome","ta":"வணக்கம்"}`)

	rec = serve(e, http.MethodGet, "/api/website-content?lang=fr", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContent_CreateValidation(t *testing.T) {
	repo := &memoryContent{}
	h := NewContentHandler(usecase.NewWebsiteContentUseCase(repo, nil))

	e := newEcho()
	e.POST("/api/admin/website-content", h.Create)

	rec := serve(e, http.MethodPost, "/api/admin/website-content", `{"section_key":"hero"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)

	rec = serve(e, http.MethodPost, "/api/admin/website-content",
		`{"page":"Home Page","section_key":"hero","content":{"en":"Hi"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/api/admin/website-content",
		`{"page":"about","section_key":"intro","content":{"en":"Founded 1975","ta":"1975 இல் நிறுவப்பட்டது"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, repo.sections, 1)
	assert.True(t, repo.sections[0].IsActive)
	assert.Equal(t, entity.ContentTypeText, repo.sections[0].Type)
}
