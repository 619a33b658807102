// Package models contains database model definitions.
package models

import (
	"github.com/google/uuid"
)

// All returns every model in migration order.
func All() []any {
	return []any{
		&Country{},
		&Brand{},
		&Product{},
		&Offering{},
		&Activity{},
		&OfferingActivity{},
		&StaffingDetail{},
		&PricingDetail{},
		&WBS{},
		&ActivityWBS{},
	}
}

// assignID sets a random UUID unless the caller provided one.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
