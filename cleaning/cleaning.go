// Package cleaning holds the cleaning-job resource: the model, its
// validation rules, and the bun-backed repository.
package cleaning

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Type classifies how thorough a cleaning job is.
type Type string

const (
	TypeDustUp    Type = "dust_up"
	TypeSpotClean Type = "spot_clean"
	TypeFullClean Type = "full_clean"
)

// DefaultType is applied when a job is created without an explicit type.
const DefaultType = TypeSpotClean

// Types lists the accepted job types.
func Types() []any {
	return []any{TypeDustUp, TypeSpotClean, TypeFullClean}
}

// Valid reports whether t is one of the accepted job types.
func (t Type) Valid() bool {
	switch t {
	case TypeDustUp, TypeSpotClean, TypeFullClean:
		return true
	}
	return false
}

// Cleaning is a cleaning job offering.
type Cleaning struct {
	bun.BaseModel `bun:"table:cleanings,alias:cln"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description" json:"description,omitempty"`
	Price       float64    `bun:"price,notnull" json:"price"`
	Type        Type       `bun:"cleaning_type,notnull" json:"cleaning_type"`
	OwnerID     uuid.UUID  `bun:"owner_id,nullzero,type:uuid" json:"owner_id,omitempty"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// CreatePayload carries a new cleaning job. Type is optional and defaults
// to spot_clean.
type CreatePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Type        Type    `json:"cleaning_type"`
}

// Validate will run validation rules
func (p CreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&p.Type, validation.In(Types()...)),
	)
}

// Record materializes the payload into a model owned by owner.
func (p CreatePayload) Record(owner uuid.UUID) *Cleaning {
	t := p.Type
	if t == "" {
		t = DefaultType
	}

	return &Cleaning{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Type:        t,
		OwnerID:     owner,
	}
}

// UpdatePayload carries a partial update; nil fields are left untouched.
type UpdatePayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Type        *Type    `json:"cleaning_type"`
}

// Validate will run validation rules
func (p UpdatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&p.Price, validation.Min(0.0)),
		validation.Field(&p.Type, validation.In(Types()...)),
	)
}

// Apply copies the populated fields onto the record.
func (p UpdatePayload) Apply(record *Cleaning) {
	if p.Name != nil {
		record.Name = *p.Name
	}
	if p.Description != nil {
		record.Description = *p.Description
	}
	if p.Price != nil {
		record.Price = *p.Price
	}
	if p.Type != nil {
		record.Type = *p.Type
	}
}
