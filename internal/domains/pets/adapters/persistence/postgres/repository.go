package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pettypes "github.com/Apurer/petstore-contract-suite/internal/domains/pets/application/types"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/domain"
	"github.com/Apurer/petstore-contract-suite/internal/domains/pets/ports"
	"github.com/Apurer/petstore-contract-suite/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns.
// The schema is owned by the migrations package.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID           int64          `gorm:"primaryKey;column:id"`
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

func newPetRecord(p *domain.Pet) petRecord {
	rec := petRecord{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		PhotoURLs: pq.StringArray(append([]string{}, p.PhotoURLs...)),
		TagIDs:    make(pq.Int64Array, 0, len(p.Tags)),
		TagNames:  make(pq.StringArray, 0, len(p.Tags)),
	}
	for _, tag := range p.Tags {
		rec.TagIDs = append(rec.TagIDs, tag.ID)
		rec.TagNames = append(rec.TagNames, tag.Name)
	}
	if p.Category != nil {
		id := p.Category.ID
		rec.CategoryID = &id
		rec.CategoryName = p.Category.Name
	}
	return rec
}

// Save inserts or updates a pet aggregate.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"category_id":   record.CategoryID,
				"category_name": record.CategoryName,
				"name":          record.Name,
				"photo_urls":    record.PhotoURLs,
				"status":        record.Status,
				"tag_ids":       record.TagIDs,
				"tag_names":     record.TagNames,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, pet.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a pet by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByStatus returns pets matching any provided status ordered by id.
func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return []*pettypes.PetProjection{}, nil
	}
	args := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).
		Where("status IN ?", args).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted pet ordered by id.
func (r *Repository) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// Clear removes every pet.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&petRecord{}).Error
}

func recordsToProjections(records []petRecord) []*pettypes.PetProjection {
	list := make([]*pettypes.PetProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}

func (r *petRecord) toProjection() *pettypes.PetProjection {
	return &pettypes.PetProjection{
		Pet:      r.toDomain(),
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

func (r *petRecord) toDomain() *domain.Pet {
	pet := &domain.Pet{
		ID:        r.ID,
		Name:      r.Name,
		Status:    domain.Status(r.Status),
		PhotoURLs: append([]string{}, r.PhotoURLs...),
		Tags:      []domain.Tag{},
	}
	if r.CategoryID != nil || r.CategoryName != "" {
		cat := domain.Category{Name: r.CategoryName}
		if r.CategoryID != nil {
			cat.ID = *r.CategoryID
		}
		pet.Category = &cat
	}
	for i := 0; i < max(len(r.TagIDs), len(r.TagNames)); i++ {
		var tag domain.Tag
		if i < len(r.TagIDs) {
			tag.ID = r.TagIDs[i]
		}
		if i < len(r.TagNames) {
			tag.Name = r.TagNames[i]
		}
		pet.Tags = append(pet.Tags, tag)
	}
	return pet
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
