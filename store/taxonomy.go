package store

import (
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
)

// CategoryStore persists the flat category taxonomy.
type CategoryStore struct {
	db *gorm.DB
}

func (s *CategoryStore) List() ([]models.Category, error) {
	var cats []models.Category
	err := s.db.Order("name ASC").Find(&cats).Error
	return cats, err
}

func (s *CategoryStore) FindByID(id uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStore) Create(c *models.Category) error {
	return s.db.Create(c).Error
}

func (s *CategoryStore) Save(c *models.Category) error {
	return s.db.Save(c).Error
}

func (s *CategoryStore) Delete(c *models.Category) error {
	return s.db.Delete(c).Error
}

func (s *CategoryStore) SlugExists(slug string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// TagStore persists tags, shared across posts.
type TagStore struct {
	db *gorm.DB
}

func (s *TagStore) List() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *TagStore) FindByID(id uint) (*models.Tag, error) {
	var t models.Tag
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByIDs loads the tags for the given ids. Missing ids are reported as
// gorm.ErrRecordNotFound so callers can reject the whole request.
func (s *TagStore) FindByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.Find(&tags, ids).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return tags, nil
}

func (s *TagStore) Create(t *models.Tag) error {
	return s.db.Create(t).Error
}

func (s *TagStore) Save(t *models.Tag) error {
	return s.db.Save(t).Error
}

func (s *TagStore) Delete(t *models.Tag) error {
	return s.db.Delete(t).Error
}

func (s *TagStore) SlugExists(slug string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.Tag{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
