package category

import (
	categoryDatamodel "github.com/kkpa/jbh/internal/core/datamodel/category"
)

// EntityName scopes alert keys and lifecycle events for categories.
const EntityName = "categories"

func ToDataModel(c *Category) *categoryDatamodel.Category {
	if c == nil {
		return nil
	}
	var id int64
	if c.ID != nil {
		id = *c.ID
	}
	return &categoryDatamodel.Category{
		ID:   id,
		Name: c.Name,
		Type: c.Type,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	if c == nil {
		return nil
	}
	var id *int64
	if c.ID != 0 {
		v := c.ID
		id = &v
	}
	return &Category{
		ID:   id,
		Name: c.Name,
		Type: c.Type,
	}
}

func FromDataModelSlice(categories []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}

// FromID builds a reference row carrying only its identity, or nil when
// id is nil.
func FromID(id *int64) *categoryDatamodel.Category {
	if id == nil {
		return nil
	}
	return &categoryDatamodel.Category{ID: *id}
}
