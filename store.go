package gurukul

import (
	"context"

	"github.com/google/uuid"

	"github.com/gurukulhq/gurukul/internal/blog"
	"github.com/gurukulhq/gurukul/internal/catalog"
	"github.com/gurukulhq/gurukul/internal/referral"
	"github.com/gurukulhq/gurukul/internal/sync"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

// ContentStore holds the admin read-model collections. Each collection is a
// full snapshot of one backend listing; admin mutations routed through the
// synced services refresh the owning collection before returning. Collections
// refresh independently of each other.
type ContentStore struct {
	Courses    *sync.Collection[*catalog.Course]
	Camps      *sync.Collection[*catalog.Camp]
	Categories *sync.Collection[*catalog.Category]
	Posts      *sync.Collection[*blog.Post]
	Links      *sync.Collection[*referral.Link]
}

func newContentStore(catalogSvc catalog.Service, blogSvc blog.Service, referralSvc referral.Service, logger interfaces.Logger) *ContentStore {
	return &ContentStore{
		Courses: sync.NewCollection(func(ctx context.Context) ([]*catalog.Course, error) {
			return catalogSvc.ListCourses(ctx, catalog.ListOptions{})
		}, sync.WithLogger[*catalog.Course](logger)),
		Camps: sync.NewCollection(func(ctx context.Context) ([]*catalog.Camp, error) {
			return catalogSvc.ListCamps(ctx, catalog.ListOptions{})
		}, sync.WithLogger[*catalog.Camp](logger)),
		Categories: sync.NewCollection(func(ctx context.Context) ([]*catalog.Category, error) {
			return catalogSvc.ListCategories(ctx, "")
		}, sync.WithLogger[*catalog.Category](logger)),
		Posts: sync.NewCollection(func(ctx context.Context) ([]*blog.Post, error) {
			return blogSvc.List(ctx, blog.ListOptions{})
		}, sync.WithLogger[*blog.Post](logger)),
		Links: sync.NewCollection(func(ctx context.Context) ([]*referral.Link, error) {
			return referralSvc.ListLinks(ctx)
		}, sync.WithLogger[*referral.Link](logger)),
	}
}

// Refresh re-fetches every collection. Used at startup to warm the admin
// read model.
func (s *ContentStore) Refresh(ctx context.Context) error {
	if err := s.Courses.Refresh(ctx); err != nil {
		return err
	}
	if err := s.Camps.Refresh(ctx); err != nil {
		return err
	}
	if err := s.Categories.Refresh(ctx); err != nil {
		return err
	}
	if err := s.Posts.Refresh(ctx); err != nil {
		return err
	}
	return s.Links.Refresh(ctx)
}

// SyncedCatalog wraps the catalog service so every mutation refreshes its
// owning collection before returning.
func (s *ContentStore) SyncedCatalog(base catalog.Service) catalog.Service {
	return &syncedCatalog{Service: base, store: s}
}

// SyncedBlog wraps the blog service with post-mutation refreshes.
func (s *ContentStore) SyncedBlog(base blog.Service) blog.Service {
	return &syncedBlog{Service: base, store: s}
}

// SyncedReferral wraps the referral service with link refreshes. Visits and
// enrollments are event streams, not snapshot collections, so those
// operations pass through untouched.
func (s *ContentStore) SyncedReferral(base referral.Service) referral.Service {
	return &syncedReferral{Service: base, store: s}
}

type syncedCatalog struct {
	catalog.Service
	store *ContentStore
}

func (s *syncedCatalog) CreateCourse(ctx context.Context, req catalog.CreateCourseRequest) (*catalog.Course, error) {
	var created *catalog.Course
	err := s.store.Courses.Mutate(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Service.CreateCourse(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *syncedCatalog) UpdateCourse(ctx context.Context, req catalog.UpdateCourseRequest) (*catalog.Course, error) {
	var updated *catalog.Course
	err := s.store.Courses.Mutate(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Service.UpdateCourse(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *syncedCatalog) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return s.store.Courses.Mutate(ctx, func(ctx context.Context) error {
		return s.Service.DeleteCourse(ctx, id)
	})
}

func (s *syncedCatalog) ToggleCoursePopular(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	return s.toggleCourse(ctx, id, s.Service.ToggleCoursePopular)
}

func (s *syncedCatalog) ToggleCourseVisibility(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	return s.toggleCourse(ctx, id, s.Service.ToggleCourseVisibility)
}

func (s *syncedCatalog) ToggleCourseActive(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	return s.toggleCourse(ctx, id, s.Service.ToggleCourseActive)
}

func (s *syncedCatalog) toggleCourse(ctx context.Context, id uuid.UUID, toggle func(context.Context, uuid.UUID) (*catalog.Course, error)) (*catalog.Course, error) {
	var toggled *catalog.Course
	err := s.store.Courses.Mutate(ctx, func(ctx context.Context) error {
		var err error
		toggled, err = toggle(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

func (s *syncedCatalog) CreateCamp(ctx context.Context, req catalog.CreateCampRequest) (*catalog.Camp, error) {
	var created *catalog.Camp
	err := s.store.Camps.Mutate(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Service.CreateCamp(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *syncedCatalog) UpdateCamp(ctx context.Context, req catalog.UpdateCampRequest) (*catalog.Camp, error) {
	var updated *catalog.Camp
	err := s.store.Camps.Mutate(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Service.UpdateCamp(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *syncedCatalog) DeleteCamp(ctx context.Context, id uuid.UUID) error {
	return s.store.Camps.Mutate(ctx, func(ctx context.Context) error {
		return s.Service.DeleteCamp(ctx, id)
	})
}

func (s *syncedCatalog) CreateCategory(ctx context.Context, req catalog.CreateCategoryRequest) (*catalog.Category, error) {
	var created *catalog.Category
	err := s.store.Categories.Mutate(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Service.CreateCategory(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *syncedCatalog) UpdateCategory(ctx context.Context, req catalog.UpdateCategoryRequest) (*catalog.Category, error) {
	var updated *catalog.Category
	err := s.store.Categories.Mutate(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Service.UpdateCategory(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *syncedCatalog) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.Categories.Mutate(ctx, func(ctx context.Context) error {
		return s.Service.DeleteCategory(ctx, id)
	})
}

type syncedBlog struct {
	blog.Service
	store *ContentStore
}

func (s *syncedBlog) Create(ctx context.Context, req blog.CreatePostRequest) (*blog.Post, error) {
	var created *blog.Post
	err := s.store.Posts.Mutate(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Service.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *syncedBlog) Update(ctx context.Context, req blog.UpdatePostRequest) (*blog.Post, error) {
	var updated *blog.Post
	err := s.store.Posts.Mutate(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Service.Update(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *syncedBlog) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Posts.Mutate(ctx, func(ctx context.Context) error {
		return s.Service.Delete(ctx, id)
	})
}

type syncedReferral struct {
	referral.Service
	store *ContentStore
}

func (s *syncedReferral) CreateLink(ctx context.Context, req referral.CreateLinkRequest) (*referral.Link, error) {
	var created *referral.Link
	err := s.store.Links.Mutate(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Service.CreateLink(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *syncedReferral) SetLinkActive(ctx context.Context, id uuid.UUID, active bool) (*referral.Link, error) {
	var updated *referral.Link
	err := s.store.Links.Mutate(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Service.SetLinkActive(ctx, id, active)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *syncedReferral) DeleteLink(ctx context.Context, id uuid.UUID) error {
	return s.store.Links.Mutate(ctx, func(ctx context.Context) error {
		return s.Service.DeleteLink(ctx, id)
	})
}
