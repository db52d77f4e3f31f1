package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

const RoleUser = "ROLE_USER"

type Profile struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

type Category struct {
	ID          int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID          int64           `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"isFeatured"`
	ImageURL    string          `json:"imageUrl"`
}

var hundred = decimal.NewFromInt(100)

// CartItem is one row of a user's cart joined with the catalog product it
// points at.
type CartItem struct {
	Product         Product         `json:"product"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// LineTotal is price * quantity * (1 - discount/100).
func (i CartItem) LineTotal() decimal.Decimal {
	subtotal := i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
	discount := subtotal.Mul(i.DiscountPercent).Div(hundred)
	return subtotal.Sub(discount).Round(2)
}

// Cart is keyed by product id, so a product appears at most once.
type Cart struct {
	UserID int64              `json:"-"`
	Items  map[int64]CartItem `json:"items"`
}

func NewCart(userID int64) *Cart {
	return &Cart{UserID: userID, Items: make(map[int64]CartItem)}
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) Contains(productID int64) bool {
	_, ok := c.Items[productID]
	return ok
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

type Order struct {
	ID             int64           `json:"orderId"`
	UserID         int64           `json:"userId"`
	Date           time.Time       `json:"date"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Zip            string          `json:"zip"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	LineItems      []LineItem      `json:"lineItems,omitempty"`
}

// LineItem snapshots the catalog price at checkout time.
type LineItem struct {
	ID         int64           `json:"orderLineItemId"`
	OrderID    int64           `json:"orderId"`
	ProductID  int64           `json:"productId"`
	SalesPrice decimal.Decimal `json:"salesPrice"`
	Quantity   int             `json:"quantity"`
	Discount   decimal.Decimal `json:"discount"`
}
