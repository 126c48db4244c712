package models

import "time"

type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" bson:"is_admin"`
	ResetToken   string    `json:"-" bson:"reset_token,omitempty"`
	ResetExpiry  time.Time `json:"-" bson:"reset_expiry,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

type Review struct {
	UserID    string    `json:"userid" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Product struct {
	ProductID    string    `json:"productid" bson:"productid"`
	Name         string    `json:"name" bson:"name"`
	Slug         string    `json:"slug" bson:"slug"`
	Image        string    `json:"image" bson:"image"`
	Brand        string    `json:"brand" bson:"brand"`
	Price        float64   `json:"price" bson:"price"`
	CountInStock int       `json:"countInStock" bson:"count_in_stock"`
	Description  string    `json:"description" bson:"description"`
	Category     string    `json:"category" bson:"category"`
	Rating       float64   `json:"rating" bson:"rating"`
	NumReviews   int       `json:"numReviews" bson:"num_reviews"`
	Reviews      []Review  `json:"reviews" bson:"reviews"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// OrderItem is a snapshot of a product at order-creation time. Later
// catalog edits never alter a placed order.
type OrderItem struct {
	ProductID string  `json:"productid" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image" bson:"image"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type ShippingAddress struct {
	FullName string `json:"fullName" bson:"full_name"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	Country  string `json:"country" bson:"country"`
	Phone    string `json:"phone" bson:"phone"`
}

type Order struct {
	OrderID         string          `json:"orderid" bson:"orderid"`
	UserID          string          `json:"userid" bson:"userid"`
	BuyerName       string          `json:"buyerName,omitempty" bson:"buyer_name,omitempty"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shipping_address"`
	PaymentMethod   string          `json:"paymentMethod" bson:"payment_method"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"items_price"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shipping_price"`
	TaxPrice        float64         `json:"taxPrice" bson:"tax_price"`
	TotalPrice      float64         `json:"totalPrice" bson:"total_price"`
	IsPaid          bool            `json:"isPaid" bson:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"is_delivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"delivered_at,omitempty"`
	PaymentRef      string          `json:"paymentRef,omitempty" bson:"payment_ref,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"created_at"`
}

// Index is the payload published on the events channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
