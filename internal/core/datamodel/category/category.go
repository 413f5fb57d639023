package category

const (
	TableName    = "category"
	SequenceName = "seq_category_id"

	// NameConstraint is the unique constraint on name.
	NameConstraint = "ux_category_name"
)

// Category is one row of the CATEGORY table. ID is assigned from
// SEQ_CATEGORY_ID on first insert.
type Category struct {
	ID   int64  `gorm:"column:id_category;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(10);uniqueIndex:ux_category_name;not null"`
	Type string `gorm:"column:type;type:varchar(1);not null"`
}

func (Category) TableName() string {
	return TableName
}

// Columns maps API property names to column names. Only these may be used
// for ordering.
var Columns = map[string]string{
	"id":   "id_category",
	"name": "name",
	"type": "type",
}
