package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired     = errors.New("catalog: default locale title is required")
	ErrSlugRequired      = errors.New("catalog: slug is required")
	ErrSlugInvalid       = errors.New("catalog: slug contains invalid characters")
	ErrSlugExists        = errors.New("catalog: slug already exists")
	ErrIDRequired        = errors.New("catalog: id required")
	ErrNamespaceInvalid  = errors.New("catalog: category namespace must be course or blog")
	ErrNameRequired      = errors.New("catalog: default locale name is required")
	ErrCategoryExists    = errors.New("catalog: category already exists in namespace")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
