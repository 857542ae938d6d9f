package service

import (
	"context"
	"errors"
	"io"
	"time"
)

// Modules are the top-level folders files are stored under.
const (
	ModuleTransactions = "transactions"
	ModuleProjects     = "projects"
	ModuleActivities   = "activities"
	ModuleInitiatives  = "initiatives"
	ModuleApplications = "applications"
	ModuleContent      = "content"
)

var Modules = []string{
	ModuleTransactions,
	ModuleProjects,
	ModuleActivities,
	ModuleInitiatives,
	ModuleApplications,
	ModuleContent,
}

func IsValidModule(module string) bool {
	for _, m := range Modules {
		if m == module {
			return true
		}
	}
	return false
}

var ErrFileNotFound = errors.New("file not found")

type StoredFile struct {
	Module      string    `json:"module"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// FileStorage stores files as <module>/<name>.
type FileStorage interface {
	Save(ctx context.Context, module, name, contentType string, r io.Reader) (*StoredFile, error)
	List(ctx context.Context, module string) ([]StoredFile, error)
	Delete(ctx context.Context, module, name string) error
	URL(module, name string) string
}
