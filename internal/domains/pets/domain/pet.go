package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a pet inside the store catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Statuses lists every known lifecycle value.
var Statuses = []Status{StatusAvailable, StatusPending, StatusSold}

// Category groups pets in the catalog.
type Category struct {
	ID   int64
	Name string
}

// Tag is a lightweight marker attached to pets for filtering.
type Tag struct {
	ID   int64
	Name string
}

// Pet represents the aggregate managed by the pets bounded context.
type Pet struct {
	ID        int64
	Category  *Category
	Name      string
	PhotoURLs []string
	Tags      []Tag
	Status    Status
}

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrInvalidStatus = errors.New("pet status is not one of available, pending, sold")
)

// ParseStatus returns the Status for raw or ErrInvalidStatus.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	switch status {
	case StatusAvailable, StatusPending, StatusSold:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// NewPet validates the invariants and builds an available Pet with no photos.
func NewPet(id int64, name string) (*Pet, error) {
	p := &Pet{ID: id, Status: StatusAvailable, PhotoURLs: []string{}, Tags: []Tag{}}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ReplacePhotos swaps the photo list. An empty list is allowed.
func (p *Pet) ReplacePhotos(urls []string) {
	p.PhotoURLs = append([]string{}, urls...)
}

// UpdateStatus rejects unknown lifecycle values.
func (p *Pet) UpdateStatus(status Status) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	p.Status = parsed
	return nil
}

// ReplaceTags swaps the current tag set.
func (p *Pet) ReplaceTags(tags []Tag) {
	p.Tags = append([]Tag{}, tags...)
}

// UpdateCategory sets a new category pointer.
func (p *Pet) UpdateCategory(cat *Category) {
	if cat == nil {
		p.Category = nil
		return
	}
	copy := *cat
	p.Category = &copy
}

// Clone returns a deep copy safe to hand to another goroutine.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	clone.UpdateCategory(p.Category)
	clone.PhotoURLs = append([]string{}, p.PhotoURLs...)
	clone.Tags = append([]Tag{}, p.Tags...)
	return &clone
}
