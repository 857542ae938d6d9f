package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewFileName returns a unique name with an extension matching contentType.
func NewFileName(contentType string) string {
	return fmt.Sprintf("%s-%s%s", uuid.New().String(), time.Now().Format("20060102150405"), Extension(contentType))
}

func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	case "application/msword":
		return ".doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	}
	return ".bin"
}
