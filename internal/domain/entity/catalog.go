package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       Bilingual          `json:"title" bson:"title"`
	Author      Bilingual          `json:"author" bson:"author"`
	Description Bilingual          `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	ISBN        string             `json:"isbn,omitempty" bson:"isbn,omitempty"`
	Publisher   string             `json:"publisher,omitempty" bson:"publisher,omitempty"`
	Pages       int                `json:"pages,omitempty" bson:"pages,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	CoverImage  string             `json:"cover_image,omitempty" bson:"coverImage,omitempty"`
	Featured    bool               `json:"featured" bson:"featured"`
	Active      bool               `json:"active" bson:"active"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updatedAt"`
}

func (b *Book) Localize(lang Language) interface{} {
	return struct {
		*Book
		Title       string   `json:"title"`
		Author      string   `json:"author"`
		Description string   `json:"description"`
		Lang        Language `json:"lang"`
	}{b, b.Title.Resolve(lang), b.Author.Resolve(lang), b.Description.Resolve(lang), lang}
}

type Ebook struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       Bilingual          `json:"title" bson:"title"`
	Author      Bilingual          `json:"author" bson:"author"`
	Description Bilingual          `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Format      string             `json:"format" bson:"format"`
	FileURL     string             `json:"file_url,omitempty" bson:"fileUrl,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	CoverImage  string             `json:"cover_image,omitempty" bson:"coverImage,omitempty"`
	Featured    bool               `json:"featured" bson:"featured"`
	Active      bool               `json:"active" bson:"active"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updatedAt"`
}

func (e *Ebook) Localize(lang Language) interface{} {
	return struct {
		*Ebook
		Title       string   `json:"title"`
		Author      string   `json:"author"`
		Description string   `json:"description"`
		Lang        Language `json:"lang"`
	}{e, e.Title.Resolve(lang), e.Author.Resolve(lang), e.Description.Resolve(lang), lang}
}

type Poster struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       Bilingual          `json:"title" bson:"title"`
	Description Bilingual          `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Size        string             `json:"size,omitempty" bson:"size,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Featured    bool               `json:"featured" bson:"featured"`
	Active      bool               `json:"active" bson:"active"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updatedAt"`
}

func (p *Poster) Localize(lang Language) interface{} {
	return struct {
		*Poster
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Lang        Language `json:"lang"`
	}{p, p.Title.Resolve(lang), p.Description.Resolve(lang), lang}
}

// Product is the purchasable view of any catalog entry, used when pricing
// cart and order lines.
type Product struct {
	ID     primitive.ObjectID
	Type   ProductType
	Title  string
	Price  float64
	Active bool
}

func (b *Book) AsProduct() Product {
	return Product{ID: b.ID, Type: ProductTypeBook, Title: b.Title.En, Price: b.Price, Active: b.Active}
}

func (e *Ebook) AsProduct() Product {
	return Product{ID: e.ID, Type: ProductTypeEbook, Title: e.Title.En, Price: e.Price, Active: e.Active}
}

func (p *Poster) AsProduct() Product {
	return Product{ID: p.ID, Type: ProductTypePoster, Title: p.Title.En, Price: p.Price, Active: p.Active}
}
