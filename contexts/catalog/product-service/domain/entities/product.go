package entities

import (
	"strings"
	"time"
)

type ProductStatus string

const (
	ProductStatusActive  ProductStatus = "active"
	ProductStatusDeleted ProductStatus = "deleted"
)

type Product struct {
	ProductID   string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ParseStatus(raw string) (ProductStatus, bool) {
	status := ProductStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case ProductStatusActive, ProductStatusDeleted:
		return status, true
	default:
		return status, false
	}
}

func (p Product) IsDeleted() bool {
	return p.Status == ProductStatusDeleted
}

// SoftDelete marks the product deleted. It reports false when the product
// was already deleted and nothing changed.
func (p *Product) SoftDelete(now time.Time) bool {
	if p.IsDeleted() {
		return false
	}
	p.Status = ProductStatusDeleted
	p.UpdatedAt = now
	return true
}

// Matches reports whether query occurs in the name or description,
// ignoring case.
func (p Product) Matches(query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}
