package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeRichText ContentType = "richtext"
	ContentTypeImage    ContentType = "image"
	ContentTypeLink     ContentType = "link"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeText, ContentTypeRichText, ContentTypeImage, ContentTypeLink:
		return true
	}
	return false
}

// WebsiteContent is unique on (page, sectionKey). Required sections cannot
// be deleted.
type WebsiteContent struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Page       string              `json:"page" bson:"page"`
	SectionKey string              `json:"section_key" bson:"sectionKey"`
	Type       ContentType         `json:"type" bson:"type"`
	Title      Bilingual           `json:"title" bson:"title"`
	Content    Bilingual           `json:"content" bson:"content"`
	MediaURL   string              `json:"media_url,omitempty" bson:"mediaUrl,omitempty"`
	Order      int                 `json:"order" bson:"order"`
	IsRequired bool                `json:"is_required" bson:"isRequired"`
	IsActive   bool                `json:"is_active" bson:"isActive"`
	UpdatedBy  *primitive.ObjectID `json:"updated_by,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updatedAt"`
}

func (w *WebsiteContent) Localize(lang Language) interface{} {
	return struct {
		*WebsiteContent
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Lang    Language `json:"lang"`
	}{w, w.Title.Resolve(lang), w.Content.Resolve(lang), lang}
}
