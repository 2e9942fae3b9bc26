package model

import "github.com/shopspring/decimal"

func init() {
	// prices go out as JSON numbers, the storefront does arithmetic on them
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email" gorm:"index"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

func (User) TableName() string { return "users" }

func (u User) RecordID() int { return u.ID }

// PublicUser is a User as returned by the API, without the password.
type PublicUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Lastname: u.Lastname, Email: u.Email, Admin: u.Admin}
}

type Product struct {
	ID            int             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
	StockQuantity int             `json:"stockQuantity"`
	SoldQuantity  int             `json:"soldQuantity"`
	ImageURL      string          `json:"imageUrl"`
}

func (Product) TableName() string { return "products" }

func (p Product) RecordID() int { return p.ID }

// CartItem is a snapshot of a product taken when it was added to a cart.
// ID is the product id.
type CartItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl"`
}

// Subtotal is price * quantity.
func (it CartItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Cart struct {
	ID          int             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID      int             `json:"userId" gorm:"uniqueIndex"`
	Items       []CartItem      `json:"items" gorm:"serializer:json"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
}

func (Cart) TableName() string { return "carts" }

func (c Cart) RecordID() int { return c.ID }

// Sum recomputes the cart total from its lines.
func (c Cart) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Item returns the index of the line for the given product id, or -1.
func (c Cart) Item(productID int) int {
	for i, it := range c.Items {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

// Receipt describes a completed checkout: the lines that were bought and
// the products as they stand after the stock adjustment.
type Receipt struct {
	UserID      int             `json:"userId"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Products    []Product       `json:"products"`
}
