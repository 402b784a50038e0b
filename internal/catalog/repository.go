package catalog

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewCourseRepository(db *bun.DB) repository.Repository[*Course] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Course]{
		NewRecord: func() *Course { return &Course{} },
		GetID: func(c *Course) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Course, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Course) string {
			return c.Slug
		},
	})
}

func NewCampRepository(db *bun.DB) repository.Repository[*Camp] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Camp]{
		NewRecord: func() *Camp { return &Camp{} },
		GetID: func(c *Camp) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Camp, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Camp) string {
			return c.Slug
		},
	})
}

func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Category) string {
			if c == nil {
				return ""
			}
			return c.ID.String()
		},
	})
}
