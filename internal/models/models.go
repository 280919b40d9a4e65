package models

// Transaction kinds
const (
	KindAddition = "addition"
	KindUpdate   = "update"
	KindUnknown  = "unknown"
)

// Document is the whole persisted inventory state: the product catalog plus
// the append-only transaction log. It is held in memory for the lifetime of
// the process and rewritten to disk in full after every mutation.
type Document struct {
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
}

// NewDocument returns an empty document with both collections initialized.
func NewDocument() *Document {
	return &Document{
		Products:     []Product{},
		Transactions: []Transaction{},
	}
}

// Product is a stocked item. Name acts as the natural key: no two products
// may share a name. ID is derived from the collection length at insertion
// time, which is only safe because no deletion path exists.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	Quantity       int     `json:"quantity"`
	AlertThreshold int     `json:"alert_threshold"`
}

// Transaction records a single stock-affecting event. Immutable once
// appended. ProductName is a weak reference: it is not required to resolve
// to a live product.
type Transaction struct {
	ID             int    `json:"id"`
	ProductName    string `json:"product_name"`
	Timestamp      string `json:"timestamp"`
	Kind           string `json:"kind"`
	QuantityDelta  int    `json:"quantity_delta"`
	ResultingStock int    `json:"resulting_stock"`
}

// TimestampLayout is the local-clock format used for transaction timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// FindProduct returns the first product with the given name, or nil.
// First match wins: create prevents duplicate names, but load-time data
// could still carry them.
func (d *Document) FindProduct(name string) *Product {
	for i := range d.Products {
		if d.Products[i].Name == name {
			return &d.Products[i]
		}
	}
	return nil
}
