package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/utils"
)

// bookExportFields maps an export column to its value.
var bookExportFields = map[string]func(*entity.Book) string{
	"id":          func(b *entity.Book) string { return b.ID.Hex() },
	"title_en":    func(b *entity.Book) string { return b.Title.En },
	"title_ta":    func(b *entity.Book) string { return b.Title.Ta },
	"author_en":   func(b *entity.Book) string { return b.Author.En },
	"author_ta":   func(b *entity.Book) string { return b.Author.Ta },
	"description": func(b *entity.Book) string { return b.Description.En },
	"category":    func(b *entity.Book) string { return b.Category },
	"isbn":        func(b *entity.Book) string { return b.ISBN },
	"publisher":   func(b *entity.Book) string { return b.Publisher },
	"pages":       func(b *entity.Book) string { return strconv.Itoa(b.Pages) },
	"price":       func(b *entity.Book) string { return strconv.FormatFloat(b.Price, 'f', 2, 64) },
	"stock":       func(b *entity.Book) string { return strconv.Itoa(b.Stock) },
	"featured":    func(b *entity.Book) string { return strconv.FormatBool(b.Featured) },
	"active":      func(b *entity.Book) string { return strconv.FormatBool(b.Active) },
	"created_at":  func(b *entity.Book) string { return b.CreatedAt.UTC().Format(time.RFC3339) },
	"updated_at":  func(b *entity.Book) string { return b.UpdatedAt.UTC().Format(time.RFC3339) },
}

var defaultBookExportFields = []string{
	"id", "title_en", "title_ta", "author_en", "author_ta", "category", "price", "stock", "active", "created_at",
}

type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ParseExportFields splits a comma list, falling back to the default
// projection. Unknown names are rejected.
func ParseExportFields(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultBookExportFields, nil
	}

	var fields []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := bookExportFields[f]; !ok {
			return nil, errors.BadRequest(fmt.Sprintf("Unknown export field %q", f), nil)
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return defaultBookExportFields, nil
	}
	return fields, nil
}

func (uc *CatalogUseCase) ExportBooks(ctx context.Context, format, rawFields string) (*ExportResult, error) {
	fields, err := ParseExportFields(rawFields)
	if err != nil {
		return nil, err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		return nil, errors.BadRequest("Export format must be csv or json", nil)
	}

	books, _, err := uc.bookRepo.List(ctx, repository.CatalogFilter{}, repository.ListOptions{Sort: utils.DefaultSort})
	if err != nil {
		return nil, err
	}

	stamp := time.Now().Format("20060102")
	if format == "json" {
		body, err := exportBooksJSON(books, fields)
		if err != nil {
			return nil, errors.Internal("Failed to encode export", err)
		}
		return &ExportResult{ContentType: "application/json", Filename: "books-" + stamp + ".json", Body: body}, nil
	}

	body, err := exportBooksCSV(books, fields)
	if err != nil {
		return nil, errors.Internal("Failed to encode export", err)
	}
	return &ExportResult{ContentType: "text/csv; charset=utf-8", Filename: "books-" + stamp + ".csv", Body: body}, nil
}

func exportBooksCSV(books []*entity.Book, fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(fields); err != nil {
		return nil, err
	}
	row := make([]string, len(fields))
	for _, b := range books {
		for i, f := range fields {
			row[i] = bookExportFields[f](b)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportBooksJSON(books []*entity.Book, fields []string) ([]byte, error) {
	rows := make([]map[string]string, 0, len(books))
	for _, b := range books {
		row := make(map[string]string, len(fields))
		for _, f := range fields {
			row[f] = bookExportFields[f](b)
		}
		rows = append(rows, row)
	}
	return json.Marshal(rows)
}
