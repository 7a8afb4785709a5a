// Package customerrepo reads customer accounts. The customers table belongs to
// the wider portal; this service never writes to it outside of tests.
package customerrepo

import (
	"context"
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:200;not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type GormCustomerDirectory struct {
	db *gorm.DB
}

func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

func (d *GormCustomerDirectory) GetName(ctx context.Context, id kernel.UUID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	var dto CustomerDTO
	if err := d.db.WithContext(ctx).Select("id", "name").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("customer", id.String())
		}
		return "", err
	}

	return dto.Name, nil
}
