package ledger

import (
	"strings"

	"github.com/fintrack/ledger/internal/domain/shared"
)

// TransactionType classifies transactions and their categories
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// MaxCategoryNameLength limits category names
const MaxCategoryNameLength = 50

// Category-specific domain errors
var (
	ErrCategoryNotFound     = shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
	ErrCategoryNameEmpty    = shared.NewDomainError("CATEGORY_NAME_EMPTY", "Category name is required")
	ErrCategoryNameTooLong  = shared.NewDomainError("CATEGORY_NAME_TOO_LONG", "Category name must be 50 characters or less")
	ErrInvalidCategoryType  = shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type must be INCOME, EXPENSE or TRANSFER")
	ErrParentCategoryType   = shared.NewDomainError("PARENT_CATEGORY_TYPE_MISMATCH", "Parent category must have the same type")
	ErrParentCategoryGone   = shared.NewDomainError("PARENT_CATEGORY_NOT_FOUND", "Parent category not found")
	ErrCategoryLedgerCross  = shared.NewDomainError("CATEGORY_LEDGER_MISMATCH", "Category does not belong to this ledger")
)

// Category groups transactions within a ledger. Categories form a two-level
// hierarchy; a child must share its parent's type.
type Category struct {
	shared.BaseEntity
	LedgerID int64           `gorm:"not null;index" json:"ledger_id"`
	Name     string          `gorm:"size:50;not null" json:"name"`
	Type     TransactionType `gorm:"size:20;not null" json:"type"`
	Icon     string          `gorm:"size:50" json:"icon"`
	Color    string          `gorm:"size:20" json:"color"`
	ParentID *int64          `gorm:"index" json:"parent_id"`
}

// TableName returns the database table name
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(ledgerID int64, name string, catType TransactionType, icon, color string, parentID *int64) (*Category, error) {
	c := &Category{
		BaseEntity: shared.NewBaseEntity(),
		LedgerID:   ledgerID,
		Name:       strings.TrimSpace(name),
		Type:       catType,
		Icon:       icon,
		Color:      color,
		ParentID:   parentID,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) validate() error {
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}
	if len([]rune(c.Name)) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	if !c.Type.IsValid() {
		return ErrInvalidCategoryType
	}
	return nil
}

// Update changes the category's mutable fields. Type and parent are fixed
// after creation.
func (c *Category) Update(name, icon, color string) error {
	c.Name = strings.TrimSpace(name)
	c.Icon = icon
	c.Color = color
	return c.validate()
}

// DefaultCategory describes one seeded category
type DefaultCategory struct {
	Name string
	Icon string
	Type TransactionType
}

// Default categories seeded for every new ledger
var (
	DefaultIncomeCategories = []DefaultCategory{
		{Name: "급여", Icon: "salary", Type: TransactionTypeIncome},
		{Name: "용돈", Icon: "allowance", Type: TransactionTypeIncome},
		{Name: "부수입", Icon: "side-income", Type: TransactionTypeIncome},
		{Name: "기타 수입", Icon: "etc", Type: TransactionTypeIncome},
	}
	DefaultExpenseCategories = []DefaultCategory{
		{Name: "식비", Icon: "food", Type: TransactionTypeExpense},
		{Name: "교통", Icon: "transport", Type: TransactionTypeExpense},
		{Name: "주거/통신", Icon: "home", Type: TransactionTypeExpense},
		{Name: "쇼핑", Icon: "shopping", Type: TransactionTypeExpense},
		{Name: "의료/건강", Icon: "health", Type: TransactionTypeExpense},
		{Name: "문화/여가", Icon: "leisure", Type: TransactionTypeExpense},
		{Name: "기타 지출", Icon: "etc", Type: TransactionTypeExpense},
	}
)
