package standingorder

import (
	"errors"
	"strings"
	"unicode/utf8"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/guard"
)

const (
	MaxProductCodeLength = 50
	MaxProductNameLength = 100
	MaxUnitTypeLength    = 20
	MaxNotesLength       = 500
	MinQuantity          = 1
	MaxQuantity          = 10000

	// DefaultUnitType is used when an item is created without a unit.
	DefaultUnitType = "units"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a product line delivered on every scheduled day of its order.
type Item struct {
	id           kernel.UUID
	productCode  string
	productName  string
	quantity     int
	unitType     string
	specialNotes string
	guard        guard.ConstructorGuard
}

// NewItem validates a product line. Strings are trimmed and an empty unit
// type defaults to DefaultUnitType.
func NewItem(id kernel.UUID, productCode, productName string, quantity int, unitType, specialNotes string) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if strings.TrimSpace(unitType) == "" {
		unitType = DefaultUnitType
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductCode(productCode),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitType(unitType),
		item.setSpecialNotes(specialNotes),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// RestoreItem rebuilds a persisted item. It applies the same rules as NewItem.
func RestoreItem(id kernel.UUID, productCode, productName string, quantity int, unitType, specialNotes string) (Item, error) {
	return NewItem(id, productCode, productName, quantity, unitType, specialNotes)
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() kernel.UUID {
	return i.id
}

func (i Item) ProductCode() string {
	return i.productCode
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitType() string {
	return i.unitType
}

func (i Item) SpecialNotes() string {
	return i.specialNotes
}

// SameLine reports whether both items describe the same product line,
// ignoring their identifiers.
func (i Item) SameLine(other Item) bool {
	return i.productCode == other.productCode &&
		i.productName == other.productName &&
		i.quantity == other.quantity &&
		i.unitType == other.unitType &&
		i.specialNotes == other.specialNotes
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if err := requiredWithMax("product code", code, MaxProductCodeLength); err != nil {
		return err
	}
	i.productCode = code
	return nil
}

func (i *Item) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if err := requiredWithMax("product name", name, MaxProductNameLength); err != nil {
		return err
	}
	i.productName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < MinQuantity || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitType(unitType string) error {
	unitType = strings.TrimSpace(unitType)
	if err := maxLength("unit type", unitType, MaxUnitTypeLength); err != nil {
		return err
	}
	i.unitType = unitType
	return nil
}

func (i *Item) setSpecialNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if err := maxLength("special notes", notes, MaxNotesLength); err != nil {
		return err
	}
	i.specialNotes = notes
	return nil
}

func requiredWithMax(param, value string, limit int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return maxLength(param, value, limit)
}

func maxLength(param, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return errs.NewValueIsOutOfRangeError(param+" length", n, 0, limit)
	}
	return nil
}
