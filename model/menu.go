package model

import "time"

type MenuCategory struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"uniqueIndex;size:128;not null"`
	DisplayName     string    `json:"display_name" gorm:"size:255;not null"`
	Description     string    `json:"description"`
	Order           int       `json:"order" gorm:"column:display_order;default:0"`
	IsDrinkCategory bool      `json:"is_drink_category" gorm:"default:false"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`

	Items []MenuItem `json:"items" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (MenuCategory) TableName() string { return "menu_categories" }

type MenuItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	CategoryID  uint    `json:"category_id" gorm:"index;not null"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	ImagePath   string  `json:"image_path"`
	Order       int     `json:"order" gorm:"column:display_order;default:0"`
	Available   bool    `json:"available" gorm:"default:true"`

	Vegetarian      bool `json:"vegetarian" gorm:"default:false"`
	Vegan           bool `json:"vegan" gorm:"default:false"`
	Spicy           bool `json:"spicy" gorm:"default:false"`
	GlutenFree      bool `json:"gluten_free" gorm:"default:false"`
	LactoseFree     bool `json:"lactose_free" gorm:"default:false"`
	KidFriendly     bool `json:"kid_friendly" gorm:"default:false"`
	AlcoholFree     bool `json:"alcohol_free" gorm:"default:false"`
	ContainsAlcohol bool `json:"contains_alcohol" gorm:"default:false"`
	Homemade        bool `json:"homemade" gorm:"default:false"`
	SugarFree       bool `json:"sugar_free" gorm:"default:false"`
	Recommended     bool `json:"recommended" gorm:"default:false"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (MenuItem) TableName() string { return "menu_items" }
