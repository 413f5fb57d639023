package postgres

import (
	"context"
	"errors"

	"github.com/kkpa/jbh/internal/accounts"
	"github.com/kkpa/jbh/internal/core/common/pagination"
	accountsDatamodel "github.com/kkpa/jbh/internal/core/datamodel/accounts"
	"gorm.io/gorm"
)

type AccountsRepository struct {
	db *gorm.DB
}

func NewAccountsRepository(db *gorm.DB) accounts.RepositoryAPI {
	return &AccountsRepository{db: db}
}

func (r *AccountsRepository) FindAll(ctx context.Context, pageable pagination.Pageable) ([]*accountsDatamodel.Accounts, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&accountsDatamodel.Accounts{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx)
	for _, o := range pageable.Sort {
		q = q.Order(o.Clause())
	}
	if len(pageable.Sort) == 0 {
		q = q.Order("id ASC")
	}

	var rows []*accountsDatamodel.Accounts
	err := q.Offset(pageable.Offset()).Limit(pageable.Size).Find(&rows).Error
	return rows, total, err
}

func (r *AccountsRepository) FindByID(ctx context.Context, id int64) (*accountsDatamodel.Accounts, error) {
	var account accountsDatamodel.Accounts
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Save replaces a stored account or inserts a new one. An unknown ID is not
// kept; the inserted row takes the next sequence value.
func (r *AccountsRepository) Save(ctx context.Context, account *accountsDatamodel.Accounts) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if account.ID != 0 {
			var n int64
			if err := tx.Model(&accountsDatamodel.Accounts{}).Where("id = ?", account.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return tx.Save(account).Error
			}
			account.ID = 0
		}
		return tx.Create(account).Error
	})
}

func (r *AccountsRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&accountsDatamodel.Accounts{}, id).Error
	})
}
