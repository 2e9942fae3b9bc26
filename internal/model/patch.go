package model

import "github.com/shopspring/decimal"

// Patch types list the fields a client may set. Nil fields are left
// untouched. ID is accepted so clients can echo a record back, but it is
// never applied.

type UserPatch struct {
	ID       *int    `json:"id"`
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Admin    *bool   `json:"admin"`
}

func (p UserPatch) Apply(u *User) {
	setIf(&u.Name, p.Name)
	setIf(&u.Lastname, p.Lastname)
	setIf(&u.Email, p.Email)
	setIf(&u.Password, p.Password)
	setIf(&u.Admin, p.Admin)
}

type ProductPatch struct {
	ID            *int             `json:"id"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
	SoldQuantity  *int             `json:"soldQuantity"`
	ImageURL      *string          `json:"imageUrl"`
}

func (p ProductPatch) Apply(pr *Product) {
	setIf(&pr.Name, p.Name)
	setIf(&pr.Description, p.Description)
	setIf(&pr.Price, p.Price)
	setIf(&pr.StockQuantity, p.StockQuantity)
	setIf(&pr.SoldQuantity, p.SoldQuantity)
	setIf(&pr.ImageURL, p.ImageURL)
}

// CartPatch never sets the total directly: TotalAmount is accepted for
// compatibility and the stored total is always recomputed from the items.
type CartPatch struct {
	ID          *int             `json:"id"`
	UserID      *int             `json:"userId"`
	Items       *[]CartItem      `json:"items"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

func (p CartPatch) Apply(c *Cart) {
	setIf(&c.UserID, p.UserID)
	setIf(&c.Items, p.Items)
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	c.TotalAmount = c.Sum()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
