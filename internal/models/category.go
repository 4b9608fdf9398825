package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxCategoryNameLength = 100

// Category names are unique per owner (idx_categories_user_name).
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name,priority:1" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_name,priority:2" json:"name"`
	Color     *string   `gorm:"type:varchar(20)" json:"color"`
	Icon      *string   `gorm:"type:varchar(50)" json:"icon"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Expenses []Expense `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
}

// DefaultCategory describes one entry of the starter set created at registration.
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories is the starter set every new user receives.
var DefaultCategories = []DefaultCategory{
	{Name: "Food & Dining", Color: "#FF6B6B", Icon: "🍔"},
	{Name: "Transportation", Color: "#4ECDC4", Icon: "🚗"},
	{Name: "Shopping", Color: "#45B7D1", Icon: "🛍️"},
	{Name: "Entertainment", Color: "#96CEB4", Icon: "🎬"},
	{Name: "Bills & Utilities", Color: "#FFEAA7", Icon: "💡"},
	{Name: "Healthcare", Color: "#DDA0DD", Icon: "🏥"},
	{Name: "Other", Color: "#95A5A6", Icon: "📦"},
}

// NewDefaultCategories builds the starter set for userID.
func NewDefaultCategories(userID uuid.UUID) []Category {
	categories := make([]Category, 0, len(DefaultCategories))
	for _, def := range DefaultCategories {
		color, icon := def.Color, def.Icon
		categories = append(categories, Category{
			UserID: userID,
			Name:   def.Name,
			Color:  &color,
			Icon:   &icon,
		})
	}
	return categories
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("category owner is required")
	}

	if c.Name == "" {
		return errors.New("category name is required")
	}

	if len([]rune(c.Name)) > MaxCategoryNameLength {
		return errors.New("category name is too long")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
