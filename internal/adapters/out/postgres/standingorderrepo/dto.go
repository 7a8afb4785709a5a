// Package standingorderrepo persists standing order aggregates and their
// product lines, converting between domain objects and table rows.
package standingorderrepo

import (
	"time"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"

	"github.com/google/uuid"
)

// StandingOrderDTO is the row of the standing_orders table. Delivery days are
// stored in their comma separated form, e.g. "0,2".
type StandingOrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryDays        string     `gorm:"size:20;not null"`
	StartDate           time.Time  `gorm:"type:date;not null"`
	EndDate             *time.Time `gorm:"type:date"`
	Status              string     `gorm:"size:20;not null;index"`
	SpecialInstructions string     `gorm:"type:text;not null;default:''"`
	CreatedBy           string     `gorm:"size:100;not null"`
	CreatedAt           time.Time  `gorm:"autoCreateTime:false;not null"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime:false;not null"`
	Items               []ItemDTO  `gorm:"foreignKey:StandingOrderID;constraint:OnDelete:CASCADE"`
}

func (StandingOrderDTO) TableName() string {
	return "standing_orders"
}

// ItemDTO is one product line. Position keeps the order in which lines were
// entered.
type ItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StandingOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position        int       `gorm:"not null"`
	ProductCode     string    `gorm:"size:50;not null"`
	ProductName     string    `gorm:"size:100;not null"`
	Quantity        int       `gorm:"not null"`
	UnitType        string    `gorm:"size:20;not null"`
	SpecialNotes    string    `gorm:"type:text;not null;default:''"`
}

func (ItemDTO) TableName() string {
	return "standing_order_items"
}

func fromDomain(so *standingorder.StandingOrder) StandingOrderDTO {
	var endDate *time.Time
	if d := so.EndDate(); d != nil {
		t := d.Time()
		endDate = &t
	}

	return StandingOrderDTO{
		ID:                  so.ID().Bytes(),
		CustomerID:          so.CustomerID().Bytes(),
		DeliveryDays:        so.DeliveryDays().String(),
		StartDate:           so.StartDate().Time(),
		EndDate:             endDate,
		Status:              so.Status().String(),
		SpecialInstructions: so.SpecialInstructions(),
		CreatedBy:           so.CreatedBy(),
		CreatedAt:           so.CreatedAt(),
		UpdatedAt:           so.UpdatedAt(),
		Items:               itemsFromDomain(so.ID(), so.Items()),
	}
}

func itemsFromDomain(orderID kernel.UUID, items []standingorder.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for n, item := range items {
		dtos = append(dtos, ItemDTO{
			ID:              item.ID().Bytes(),
			StandingOrderID: orderID.Bytes(),
			Position:        n,
			ProductCode:     item.ProductCode(),
			ProductName:     item.ProductName(),
			Quantity:        item.Quantity(),
			UnitType:        item.UnitType(),
			SpecialNotes:    item.SpecialNotes(),
		})
	}
	return dtos
}

func toDomain(dto StandingOrderDTO) (*standingorder.StandingOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	days, err := standingorder.ParseWeekdaySet(dto.DeliveryDays)
	if err != nil {
		return nil, err
	}

	status, err := standingorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var endDate *kernel.Date
	if dto.EndDate != nil {
		d := kernel.DateOf(*dto.EndDate)
		endDate = &d
	}

	items := make([]standingorder.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := standingorder.RestoreItem(
			itemID,
			itemDTO.ProductCode,
			itemDTO.ProductName,
			itemDTO.Quantity,
			itemDTO.UnitType,
			itemDTO.SpecialNotes,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return standingorder.RestoreStandingOrder(
		id,
		customerID,
		days,
		kernel.DateOf(dto.StartDate),
		endDate,
		status,
		items,
		dto.SpecialInstructions,
		dto.CreatedBy,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
