package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the twin's schema. Repositories never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&petRecord{},
		&orderRecord{},
	)
}

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID           int64          `gorm:"primaryKey;autoIncrement:false;column:id"`
	CategoryID   *int64         `gorm:"column:category_id"`
	CategoryName string         `gorm:"column:category_name"`
	Name         string         `gorm:"column:name"`
	PhotoURLs    pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	Status       string         `gorm:"column:status;type:varchar(32);index"`
	TagIDs       pq.Int64Array  `gorm:"column:tag_ids;type:bigint[]"`
	TagNames     pq.StringArray `gorm:"column:tag_names;type:text[]"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Order schema mirrors the store Postgres adapter. ship_date stays NULL when
// the client never supplied one.
type orderRecord struct {
	ID        int64      `gorm:"primaryKey;autoIncrement:false;column:id"`
	PetID     int64      `gorm:"column:pet_id;index:idx_orders_status_pet"`
	Quantity  int32      `gorm:"column:quantity"`
	ShipDate  *time.Time `gorm:"column:ship_date"`
	Status    string     `gorm:"column:status;type:varchar(32);index:idx_orders_status_pet"`
	Complete  bool       `gorm:"column:complete"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }
