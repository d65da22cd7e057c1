package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/petstore-contract-suite/internal/domains/store/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/store/ports"
)

var (
	_ ports.Repository       = (*Repository)(nil)
	_ ports.InventoryCounter = (*Repository)(nil)
)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and the schema is owned by the migrations package.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	PetID     int64      `gorm:"column:pet_id;index:idx_orders_status_pet"`
	Quantity  int32      `gorm:"column:quantity"`
	ShipDate  *time.Time `gorm:"column:ship_date"`
	Status    string     `gorm:"column:status;type:varchar(32);index:idx_orders_status_pet"`
	Complete  bool       `gorm:"column:complete"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if record.ID == 0 {
		next, err := r.nextID(ctx)
		if err != nil {
			return nil, err
		}
		record.ID = next
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"pet_id":     record.PetID,
				"quantity":   record.Quantity,
				"ship_date":  record.ShipDate,
				"status":     record.Status,
				"complete":   record.Complete,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all orders.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// CountByStatus sums quantities per status in the database.
func (r *Repository) CountByStatus(ctx context.Context) (domain.Inventory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Status   string
		Quantity int64
	}
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Select("status, COALESCE(SUM(quantity), 0) AS quantity").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	inv := domain.NewInventory()
	for _, row := range rows {
		inv[domain.Status(row.Status)] += int32(row.Quantity)
	}
	return inv, nil
}

// Clear removes every order.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&orderRecord{}).Error
}

func (r *Repository) nextID(ctx context.Context) (int64, error) {
	var highest int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).Select("COALESCE(MAX(id), 0)").Scan(&highest).Error; err != nil {
		return 0, err
	}
	return highest + 1, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:       order.ID,
		PetID:    order.PetID,
		Quantity: order.Quantity,
		Status:   string(order.Status),
		Complete: order.Complete,
	}
	if !order.ShipDate.IsZero() {
		shipDate := order.ShipDate.UTC()
		rec.ShipDate = &shipDate
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:       r.ID,
		PetID:    r.PetID,
		Quantity: r.Quantity,
		Status:   domain.Status(r.Status),
		Complete: r.Complete,
	}
	if r.ShipDate != nil {
		order.ShipDate = r.ShipDate.UTC()
	}
	return order
}
