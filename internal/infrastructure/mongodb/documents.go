package mongodb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Los montos se guardan como Decimal128 para no perder precisión en $sum.

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal128 %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decimal %s: %w", v.String(), err)
	}
	return d, nil
}

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	LastName  string    `bson:"lastName"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
}

func newUserDoc(u *entity.User) userDoc {
	return userDoc{ID: u.ID, Name: u.Name, LastName: u.LastName, Email: u.Email, Password: u.PasswordHash, CreatedAt: u.CreatedAt}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{ID: d.ID, Name: d.Name, LastName: d.LastName, Email: d.Email, PasswordHash: d.Password, CreatedAt: d.CreatedAt}
}

type productDoc struct {
	ID        string               `bson:"_id"`
	Name      string               `bson:"name"`
	Stock     int                  `bson:"stock"`
	Price     primitive.Decimal128 `bson:"price"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func newProductDoc(p *entity.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{ID: p.ID, Name: p.Name, Stock: p.Stock, Price: price, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}, nil
}

func (d productDoc) entity() (*entity.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{ID: d.ID, Name: d.Name, Stock: d.Stock, Price: price, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}, nil
}

type clientDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	LastName  string    `bson:"lastName"`
	Company   string    `bson:"company"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone,omitempty"`
	Vendor    string    `bson:"vendor"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newClientDoc(c *entity.Client) clientDoc {
	return clientDoc{
		ID: c.ID, Name: c.Name, LastName: c.LastName, Company: c.Company, Email: c.Email,
		Phone: c.Phone, Vendor: c.VendorID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (d clientDoc) entity() *entity.Client {
	return &entity.Client{
		ID: d.ID, Name: d.Name, LastName: d.LastName, Company: d.Company, Email: d.Email,
		Phone: d.Phone, VendorID: d.Vendor, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// orderItemDoc línea embebida en el pedido ("order" en el documento).
type orderItemDoc struct {
	ID       string               `bson:"id"`
	Name     string               `bson:"name"`
	Price    primitive.Decimal128 `bson:"price"`
	Quantity int                  `bson:"quantity"`
}

type orderDoc struct {
	ID        string               `bson:"_id"`
	Order     []orderItemDoc       `bson:"order"`
	Total     primitive.Decimal128 `bson:"total"`
	Client    string               `bson:"client"`
	Vendor    string               `bson:"vendor"`
	Status    string               `bson:"status"`
	Date      time.Time            `bson:"date"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func newOrderDoc(o *entity.Order) (orderDoc, error) {
	total, err := toDecimal128(o.Total)
	if err != nil {
		return orderDoc{}, err
	}
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		price, err := toDecimal128(it.Price)
		if err != nil {
			return orderDoc{}, err
		}
		items = append(items, orderItemDoc{ID: it.ProductID, Name: it.Name, Price: price, Quantity: it.Quantity})
	}
	return orderDoc{
		ID: o.ID, Order: items, Total: total, Client: o.ClientID, Vendor: o.VendorID,
		Status: string(o.Status), Date: o.Date, UpdatedAt: o.UpdatedAt,
	}, nil
}

func (d orderDoc) entity() (*entity.Order, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, 0, len(d.Order))
	for _, it := range d.Order {
		price, err := fromDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.OrderItem{ProductID: it.ID, Name: it.Name, Price: price, Quantity: it.Quantity})
	}
	return &entity.Order{
		ID: d.ID, Items: items, Total: total, ClientID: d.Client, VendorID: d.Vendor,
		Status: entity.OrderStatus(d.Status), Date: d.Date, UpdatedAt: d.UpdatedAt,
	}, nil
}
