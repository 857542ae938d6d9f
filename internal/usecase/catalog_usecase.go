package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/utils"
)

var catalogSortFields = utils.TimestampSortFields(map[string]string{
	"title":    "title.en",
	"title_en": "title.en",
	"title_ta": "title.ta",
	"price":    "price",
	"stock":    "stock",
	"category": "category",
	"featured": "featured",
})

type CatalogListInput struct {
	Search          string
	Category        string
	Featured        *bool
	IncludeInactive bool
	Sort            string
	Page            int
	Limit           int
}

type CatalogUseCase struct {
	bookRepo   repository.BookRepository
	ebookRepo  repository.EbookRepository
	posterRepo repository.PosterRepository
	activity   ActivityRecorder
}

func NewCatalogUseCase(
	bookRepo repository.BookRepository,
	ebookRepo repository.EbookRepository,
	posterRepo repository.PosterRepository,
	activity ActivityRecorder,
) *CatalogUseCase {
	return &CatalogUseCase{
		bookRepo:   bookRepo,
		ebookRepo:  ebookRepo,
		posterRepo: posterRepo,
		activity:   activity,
	}
}

func listCatalog[T any](ctx context.Context, repo repository.CatalogRepository[T], input CatalogListInput) ([]*T, int64, error) {
	sort, err := utils.ParseSort(input.Sort, catalogSortFields)
	if err != nil {
		return nil, 0, errors.BadRequest(err.Error(), err)
	}
	p := utils.NewPaginationParams(input.Page, input.Limit)

	return repo.List(ctx, repository.CatalogFilter{
		Search:     input.Search,
		Category:   input.Category,
		Featured:   input.Featured,
		ActiveOnly: !input.IncludeInactive,
	}, repository.ListOptions{Sort: sort, Limit: p.PageSize, Offset: p.Offset})
}

// getCatalog hides inactive entries from callers that may not see them.
func getCatalog[T any](ctx context.Context, repo repository.CatalogRepository[T], id primitive.ObjectID, includeInactive bool, active func(*T) bool, resource string) (*T, error) {
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !includeInactive && !active(item) {
		return nil, errors.NotFound(resource, nil)
	}
	return item, nil
}

type CatalogInput struct {
	Title       entity.Bilingual `json:"title"`
	Author      entity.Bilingual `json:"author"`
	Description entity.Bilingual `json:"description"`
	Category    string           `json:"category" validate:"required"`
	Price       float64          `json:"price" validate:"gte=0"`
	Stock       int              `json:"stock" validate:"gte=0"`
	Featured    bool             `json:"featured"`
	Active      *bool            `json:"active"`

	// Books
	ISBN       string `json:"isbn"`
	Publisher  string `json:"publisher"`
	Pages      int    `json:"pages" validate:"gte=0"`
	CoverImage string `json:"cover_image"`

	// Ebooks
	Format  string `json:"format"`
	FileURL string `json:"file_url"`

	// Posters
	Size  string `json:"size"`
	Image string `json:"image"`
}

func (in CatalogInput) validate() error {
	if in.Title.Trimmed().En == "" {
		return errors.BadRequest("English title is required", nil)
	}
	return nil
}

func (in CatalogInput) active() bool {
	return in.Active == nil || *in.Active
}

func (uc *CatalogUseCase) recordChange(ctx context.Context, actorID primitive.ObjectID, kind string, id primitive.ObjectID, verb string) {
	record(ctx, uc.activity, entity.ActivityCatalogChanged, kind, id.Hex(), actorID.Hex(), fmt.Sprintf("%s %s", strings.ToUpper(kind[:1])+kind[1:], verb))
}

// Books

func (uc *CatalogUseCase) ListBooks(ctx context.Context, input CatalogListInput) ([]*entity.Book, int64, error) {
	return listCatalog[entity.Book](ctx, uc.bookRepo, input)
}

func (uc *CatalogUseCase) GetBook(ctx context.Context, id primitive.ObjectID, includeInactive bool) (*entity.Book, error) {
	return getCatalog[entity.Book](ctx, uc.bookRepo, id, includeInactive, func(b *entity.Book) bool { return b.Active }, "Book")
}

func (uc *CatalogUseCase) CreateBook(ctx context.Context, actorID primitive.ObjectID, input CatalogInput) (*entity.Book, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	book := &entity.Book{}
	applyBookInput(book, input)

	if err := uc.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, "book", book.ID, "created")
	return book, nil
}

func (uc *CatalogUseCase) UpdateBook(ctx context.Context, actorID, id primitive.ObjectID, input CatalogInput) (*entity.Book, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBookInput(book, input)

	if err := uc.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, "book", book.ID, "updated")
	return book, nil
}

func (uc *CatalogUseCase) DeleteBook(ctx context.Context, actorID, id primitive.ObjectID) error {
	if err := uc.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recordChange(ctx, actorID, "book", id, "deleted")
	return nil
}

func applyBookInput(b *entity.Book, in CatalogInput) {
	b.Title = in.Title.Trimmed()
	b.Author = in.Author.Trimmed()
	b.Description = in.Description.Trimmed()
	b.Category = strings.TrimSpace(in.Category)
	b.ISBN = strings.TrimSpace(in.ISBN)
	b.Publisher = strings.TrimSpace(in.Publisher)
	b.Pages = in.Pages
	b.Price = in.Price
	b.Stock = in.Stock
	b.CoverImage = in.CoverImage
	b.Featured = in.Featured
	b.Active = in.active()
}

// Ebooks

func (uc *CatalogUseCase) ListEbooks(ctx context.Context, input CatalogListInput) ([]*entity.Ebook, int64, error) {
	return listCatalog[entity.Ebook](ctx, uc.ebookRepo, input)
}

func (uc *CatalogUseCase) GetEbook(ctx context.Context, id primitive.ObjectID, includeInactive bool) (*entity.Ebook, error) {
	return getCatalog[entity.Ebook](ctx, uc.ebookRepo, id, includeInactive, func(e *entity.Ebook) bool { return e.Active }, "Ebook")
}

func (uc *CatalogUseCase) CreateEbook(ctx context.Context, actorID primitive.ObjectID, input CatalogInput) (*entity.Ebook, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	ebook := &entity.Ebook{}
	applyEbookInput(ebook, input)

	if err := uc.ebookRepo.Create(ctx, ebook); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, "ebook", ebook.ID, "created")
	return ebook, nil
}

func (uc *CatalogUseCase) UpdateEbook(ctx context.Context, actorID, id primitive.ObjectID, input CatalogInput) (*entity.Ebook, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	ebook, err := uc.ebookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyEbookInput(ebook, input)

	if err := uc.ebookRepo.Update(ctx, ebook); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, "ebook", ebook.ID, "updated")
	return ebook, nil
}

func (uc *CatalogUseCase) DeleteEbook(ctx context.Context, actorID, id primitive.ObjectID) error {
	if err := uc.ebookRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recordChange(ctx, actorID, "ebook", id, "deleted")
	return nil
}

func applyEbookInput(e *entity.Ebook, in CatalogInput) {
	e.Title = in.Title.Trimmed()
	e.Author = in.Author.Trimmed()
	e.Description = in.Description.Trimmed()
	e.Category = strings.TrimSpace(in.Category)
	e.Format = strings.ToLower(strings.TrimSpace(in.Format))
	if e.Format == "" {
		e.Format = "pdf"
	}
	e.FileURL = in.FileURL
	e.Price = in.Price
	e.CoverImage = in.CoverImage
	e.Featured = in.Featured
	e.Active = in.active()
}

// Posters

func (uc *CatalogUseCase) ListPosters(ctx context.Context, input CatalogListInput) ([]*entity.Poster, int64, error) {
	return listCatalog[entity.Poster](ctx, uc.posterRepo, input)
}

func (uc *CatalogUseCase) GetPoster(ctx context.Context, id primitive.ObjectID, includeInactive bool) (*entity.Poster, error) {
	return getCatalog[entity.Poster](ctx, uc.posterRepo, id, includeInactive, func(p *entity.Poster) bool { return p.Active }, "Poster")
}

func (uc *CatalogUseCase) CreatePoster(ctx context.Context, actorID primitive.ObjectID, input CatalogInput) (*entity.Poster, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	poster := &entity.Poster{}
	applyPosterInput(poster, input)

	if err := uc.posterRepo.Create(ctx, poster); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, "poster", poster.ID, "created")
	return poster, nil
}

func (uc *CatalogUseCase) UpdatePoster(ctx context.Context, actorID, id primitive.ObjectID, input CatalogInput) (*entity.Poster, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	poster, err := uc.posterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPosterInput(poster, input)

	if err := uc.posterRepo.Update(ctx, poster); err != nil {
		return nil, err
	}
	uc.recordChange(ctx, actorID, "poster", poster.ID, "updated")
	return poster, nil
}

func (uc *CatalogUseCase) DeletePoster(ctx context.Context, actorID, id primitive.ObjectID) error {
	if err := uc.posterRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recordChange(ctx, actorID, "poster", id, "deleted")
	return nil
}

func applyPosterInput(p *entity.Poster, in CatalogInput) {
	p.Title = in.Title.Trimmed()
	p.Description = in.Description.Trimmed()
	p.Category = strings.TrimSpace(in.Category)
	p.Size = strings.TrimSpace(in.Size)
	p.Price = in.Price
	p.Stock = in.Stock
	p.Image = in.Image
	p.Featured = in.Featured
	p.Active = in.active()
}

// ResolveProduct loads a purchasable product. Unknown or inactive products
// are a bad request from the buyer's point of view.
func (uc *CatalogUseCase) ResolveProduct(ctx context.Context, productType entity.ProductType, id primitive.ObjectID) (*entity.Product, error) {
	var (
		product entity.Product
		err     error
	)

	switch productType {
	case entity.ProductTypeBook:
		var b *entity.Book
		if b, err = uc.bookRepo.GetByID(ctx, id); err == nil {
			product = b.AsProduct()
		}
	case entity.ProductTypeEbook:
		var e *entity.Ebook
		if e, err = uc.ebookRepo.GetByID(ctx, id); err == nil {
			product = e.AsProduct()
		}
	case entity.ProductTypePoster:
		var p *entity.Poster
		if p, err = uc.posterRepo.GetByID(ctx, id); err == nil {
			product = p.AsProduct()
		}
	default:
		return nil, errors.BadRequest(fmt.Sprintf("Unknown product type %q", productType), nil)
	}

	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.BadRequest(fmt.Sprintf("Product %s not found", id.Hex()), err)
		}
		return nil, err
	}
	if !product.Active {
		return nil, errors.BadRequest(fmt.Sprintf("Product %q is not available", product.Title), nil)
	}
	return &product, nil
}

// Counts feeds the dashboard.
func (uc *CatalogUseCase) Counts(ctx context.Context) (map[string]int64, error) {
	books, err := uc.bookRepo.Count(ctx, repository.CatalogFilter{})
	if err != nil {
		return nil, err
	}
	ebooks, err := uc.ebookRepo.Count(ctx, repository.CatalogFilter{})
	if err != nil {
		return nil, err
	}
	posters, err := uc.posterRepo.Count(ctx, repository.CatalogFilter{})
	if err != nil {
		return nil, err
	}
	return map[string]int64{"books": books, "ebooks": ebooks, "posters": posters}, nil
}
