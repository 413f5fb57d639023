package postgres

import (
	"context"
	"errors"

	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/category"
	"github.com/kkpa/jbh/internal/core/common/dberror"
	"github.com/kkpa/jbh/internal/core/common/pagination"
	categoryDatamodel "github.com/kkpa/jbh/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

// FindAll returns one page ordered by the requested columns, falling back
// to id order so pages are stable.
func (r *CategoryRepository) FindAll(ctx context.Context, pageable pagination.Pageable) ([]*categoryDatamodel.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&categoryDatamodel.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx)
	for _, o := range pageable.Sort {
		q = q.Order(o.Clause())
	}
	if len(pageable.Sort) == 0 {
		q = q.Order("id_category ASC")
	}

	var categories []*categoryDatamodel.Category
	err := q.Offset(pageable.Offset()).Limit(pageable.Size).Find(&categories).Error
	return categories, total, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id_category = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// Save inserts cat when its ID is zero and replaces every column otherwise.
// A replace of an ID that is not stored inserts a new row, and the ID comes
// from the sequence rather than the caller.
func (r *CategoryRepository) Save(ctx context.Context, cat *categoryDatamodel.Category) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cat.ID != 0 {
			var n int64
			if err := tx.Model(&categoryDatamodel.Category{}).Where("id_category = ?", cat.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return tx.Save(cat).Error
			}
			cat.ID = 0
		}
		return tx.Create(cat).Error
	})
	if dberror.ViolatesUnique(err, categoryDatamodel.NameConstraint, categoryDatamodel.TableName+".name") {
		return internal.NewConflictError("category name already exists", internal.ErrCodeNameExists).
			WithEntity(category.EntityName).
			WithCause(err)
	}
	return err
}

func (r *CategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&categoryDatamodel.Category{}, id).Error
	})
}
