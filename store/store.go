// Package store wraps all database access behind small repository types so
// request handlers and validators depend on explicit collaborators instead of
// query building. Uniqueness is ultimately enforced by database constraints;
// the Exists helpers are best-effort pre-checks (see DESIGN.md).
package store

import "gorm.io/gorm"

// Store bundles the per-entity repositories over one GORM handle.
type Store struct {
	Users      *UserStore
	Posts      *PostStore
	Categories *CategoryStore
	Tags       *TagStore
	Comments   *CommentStore
}

// New returns GORM-backed repositories.
func New(db *gorm.DB) *Store {
	return &Store{
		Users:      &UserStore{db: db},
		Posts:      &PostStore{db: db},
		Categories: &CategoryStore{db: db},
		Tags:       &TagStore{db: db},
		Comments:   &CommentStore{db: db},
	}
}
