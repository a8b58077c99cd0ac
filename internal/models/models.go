package models

import (
	"time"
)

type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"uniqueIndex;not null"      json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
}

type Category struct {
	ID    int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"uniqueIndex;not null"     json:"title"`
}

// ProductCategory links products and categories many-to-many,
// keyed by the pair of ids.
type ProductCategory struct {
	ProductID  int       `gorm:"primaryKey" json:"product_id"`
	CategoryID int       `gorm:"primaryKey" json:"category_id"`
	Product    *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"  json:"-"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

type User struct {
	ID           string `gorm:"primaryKey"           json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Role         string `gorm:"not null"             json:"role"`
}

type ProfileUser struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	AppUserID   string `gorm:"index;not null"           json:"app_user_id"`
	AppUser     *User  `gorm:"foreignKey:AppUserID;constraint:OnDelete:CASCADE" json:"-"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type Sale struct {
	ID            int          `gorm:"primaryKey;autoIncrement"    json:"id"`
	ProductID     int          `gorm:"index;not null"              json:"product_id"`
	ProfileUserID *int         `gorm:"index"                       json:"profile_user_id"`
	Quantity      int          `gorm:"not null;check:quantity > 0" json:"quantity"`
	SaleDate      time.Time    `json:"sale_date"`
	Product       *Product     `gorm:"foreignKey:ProductID"     json:"-"`
	ProfileUser   *ProfileUser `gorm:"foreignKey:ProfileUserID" json:"-"`
}
