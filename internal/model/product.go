package model

type ProductStatus string

const (
	StatusInStock    ProductStatus = "In Stock"
	StatusOutOfStock ProductStatus = "Out of Stock"
)

// DeriveStatus computes the status a product must carry for a given stock
// level. Status is never accepted from input; every write path calls this.
func DeriveStatus(stock int) ProductStatus {
	if stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

type Product struct {
	BaseModel
	// Unique index enforces name uniqueness at the storage layer; the
	// service-level pre-check alone is check-then-write and race-prone.
	Name     string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Unit     string        `gorm:"type:varchar(50);not null" json:"unit" validate:"required"`
	Category string        `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Brand    string        `gorm:"type:varchar(100);not null" json:"brand" validate:"required"`
	Stock    int           `gorm:"not null;default:0;check:stock >= 0" json:"stock" validate:"gte=0"`
	Status   ProductStatus `gorm:"type:varchar(20);not null" json:"status"`
	Image    string        `gorm:"type:text" json:"image"`
}
