package accounts

import (
	accountsDatamodel "github.com/kkpa/jbh/internal/core/datamodel/accounts"
	"github.com/kkpa/jbh/pkg/date"
)

const EntityName = "accounts"

func ToDataModel(a *Accounts) *accountsDatamodel.Accounts {
	if a == nil {
		return nil
	}
	var id int64
	if a.ID != nil {
		id = *a.ID
	}
	return &accountsDatamodel.Accounts{
		ID:          id,
		Description: a.Description,
		CreatedAt:   date.ToTimePtr(a.CreatedAt),
		UpdatedAt:   date.ToTimePtr(a.UpdatedAt),
	}
}

func FromDataModel(a *accountsDatamodel.Accounts) *Accounts {
	if a == nil {
		return nil
	}
	var id *int64
	if a.ID != 0 {
		v := a.ID
		id = &v
	}
	return &Accounts{
		ID:          id,
		Description: a.Description,
		CreatedAt:   date.FromTimePtr(a.CreatedAt),
		UpdatedAt:   date.FromTimePtr(a.UpdatedAt),
	}
}

func FromDataModelSlice(rows []*accountsDatamodel.Accounts) []*Accounts {
	result := make([]*Accounts, len(rows))
	for i, a := range rows {
		result[i] = FromDataModel(a)
	}
	return result
}

func FromID(id *int64) *accountsDatamodel.Accounts {
	if id == nil {
		return nil
	}
	return &accountsDatamodel.Accounts{ID: *id}
}
