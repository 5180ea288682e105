package models

import (
	"time"
)

const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

const (
	CallbackStatusPending   = "pending"
	CallbackStatusContacted = "contacted"
	CallbackStatusResolved  = "resolved"
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null"                 json:"name"`
	Category      string    `gorm:"not null;index"           json:"category"`
	SubCategory   string    `json:"subCategory"`
	Price         float64   `gorm:"not null"                 json:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Description   string    `json:"description"`
	Material      string    `json:"material"`
	ImageURL      string    `json:"imageUrl"`
	Images        []string  `gorm:"serializer:json"          json:"images"`
	IsOffer       bool      `gorm:"default:false"            json:"isOffer"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Order holds a denormalized product name and a client-supplied amount,
// not a reference to a Product record.
type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Product   string    `gorm:"not null"                 json:"product"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Phone     string    `gorm:"not null"                 json:"phone"`
	Address   string    `gorm:"not null"                 json:"address"`
	Notes     string    `json:"notes"`
	Amount    float64   `gorm:"default:0"                json:"amount"`
	Status    string    `gorm:"not null;default:Pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CallbackRequest struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Phone     string    `gorm:"not null"                 json:"phone"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string    `gorm:"not null"                  json:"name"`
	Email        string    `gorm:"unique;not null"           json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         string    `gorm:"not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Settings is a single row pinned to SettingsID.
type Settings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WhatsappNumber string    `json:"whatsappNumber"`
	CallNumber     string    `json:"callNumber"`
	Address        string    `json:"address"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

const SettingsID uint = 1

func DefaultSettings() Settings {
	return Settings{
		ID:             SettingsID,
		WhatsappNumber: "919999999999",
		CallNumber:     "+91999999999",
	}
}
