package service

import (
	"fmt"
	"iter"
	"strconv"
	"sync"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"
	"inventory-service/pkg/validator"

	"go.uber.org/zap"
)

// InventoryService holds the sole long-lived handle on the in-memory
// document and applies the two mutating operations plus the read-side
// reports. Every successful mutation rewrites the backing file through the
// store; operations are all-or-nothing, a failed save rolls the in-memory
// change back.
//
// The document contract is single-owner sequential; the mutex exists only
// because the HTTP presentation layer calls in from concurrent handlers.
type InventoryService struct {
	mu     sync.Mutex
	doc    *models.Document
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewInventoryService creates the service around an already-loaded document.
func NewInventoryService(st *store.Store, doc *models.Document) *InventoryService {
	return &InventoryService{
		doc:    doc,
		store:  st,
		logger: util.GetLogger(),
		now:    time.Now,
	}
}

// CreateProduct registers a new product from raw user-entered strings. The
// service owns all parsing and validation: price must parse as a
// non-negative number, quantity and alertThreshold as integers, and the
// name must not collide with an existing product. On success the product is
// appended, an "addition" transaction is recorded with the initial quantity,
// and the document is persisted.
func (s *InventoryService) CreateProduct(name, price, quantity, alertThreshold string) (*models.Product, error) {
	priceVal, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return nil, s.rejectInput("price", "must be a number")
	}
	quantityVal, err := strconv.Atoi(quantity)
	if err != nil {
		return nil, s.rejectInput("quantity", "must be an integer")
	}
	thresholdVal, err := strconv.Atoi(alertThreshold)
	if err != nil {
		return nil, s.rejectInput("alert_threshold", "must be an integer")
	}

	product := models.Product{
		Name:           name,
		Price:          priceVal,
		Quantity:       quantityVal,
		AlertThreshold: thresholdVal,
	}
	if errs := validator.ValidateStruct(&product); len(errs) > 0 {
		switch errs[0].FailedField {
		case "Product.Name":
			return nil, s.rejectInput("name", "must not be empty")
		case "Product.Price":
			return nil, s.rejectInput("price", "must be non-negative")
		default:
			return nil, s.rejectInput("input", "failed validation")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.FindProduct(name) != nil {
		util.ValidationFailuresTotal.WithLabelValues("duplicate_product").Inc()
		return nil, fmt.Errorf("%w: %s", models.ErrDuplicateProduct, name)
	}

	// Length-derived id: acceptable only because no deletion path exists.
	product.ID = strconv.Itoa(len(s.doc.Products) + 1)
	s.doc.Products = append(s.doc.Products, product)
	s.appendTransaction(name, models.KindAddition, quantityVal, quantityVal)

	if err := s.store.Save(s.doc); err != nil {
		s.doc.Products = s.doc.Products[:len(s.doc.Products)-1]
		s.doc.Transactions = s.doc.Transactions[:len(s.doc.Transactions)-1]
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	util.TransactionsTotal.WithLabelValues(models.KindAddition).Inc()
	s.logger.Info("Product created",
		zap.String("id", product.ID),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity))
	return &product, nil
}

// AdjustQuantity accumulates delta onto the named product's quantity. Delta
// is a raw user-entered string and may be negative; no floor is enforced, so
// stock can go below zero. An "update" transaction is recorded with the
// post-mutation stock and the document is persisted. Returns the new
// quantity.
func (s *InventoryService) AdjustQuantity(productName, delta string) (int, error) {
	if productName == "" {
		return 0, s.rejectInput("product", "must not be empty")
	}
	deltaVal, err := strconv.Atoi(delta)
	if err != nil {
		return 0, s.rejectInput("delta", "must be an integer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.doc.FindProduct(productName)
	if product == nil {
		util.ValidationFailuresTotal.WithLabelValues("product_not_found").Inc()
		return 0, fmt.Errorf("%w: %s", models.ErrProductNotFound, productName)
	}

	product.Quantity += deltaVal
	s.appendTransaction(productName, models.KindUpdate, deltaVal, product.Quantity)

	if err := s.store.Save(s.doc); err != nil {
		product.Quantity -= deltaVal
		s.doc.Transactions = s.doc.Transactions[:len(s.doc.Transactions)-1]
		return 0, err
	}

	util.StockAdjustmentsTotal.Inc()
	util.TransactionsTotal.WithLabelValues(models.KindUpdate).Inc()
	s.logger.Info("Stock adjusted",
		zap.String("name", productName),
		zap.Int("delta", deltaVal),
		zap.Int("quantity", product.Quantity))
	return product.Quantity, nil
}

// Products returns a snapshot of the catalog in insertion order.
func (s *InventoryService) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.doc.Products))
	copy(out, s.doc.Products)
	return out
}

// Transactions returns a snapshot of the log in insertion order.
func (s *InventoryService) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.doc.Transactions))
	copy(out, s.doc.Transactions)
	return out
}

// TransactionReport returns a lazy, restartable sequence of formatted
// transaction lines in insertion order. No re-sorting, no filtering.
func (s *InventoryService) TransactionReport() iter.Seq[string] {
	transactions := s.Transactions()
	return func(yield func(string) bool) {
		for _, t := range transactions {
			line := fmt.Sprintf("ID: %d | Product: %s | Kind: %s | Quantity: %d | Final Stock: %d | Date: %s",
				t.ID, t.ProductName, t.Kind, t.QuantityDelta, t.ResultingStock, t.Timestamp)
			if !yield(line) {
				return
			}
		}
	}
}

// appendTransaction records a stock-affecting event. Caller holds the lock
// and counts the transaction only once the save succeeds.
func (s *InventoryService) appendTransaction(productName, kind string, delta, resultingStock int) {
	s.doc.Transactions = append(s.doc.Transactions, models.Transaction{
		ID:             len(s.doc.Transactions) + 1,
		ProductName:    productName,
		Timestamp:      s.now().Format(models.TimestampLayout),
		Kind:           kind,
		QuantityDelta:  delta,
		ResultingStock: resultingStock,
	})
}

func (s *InventoryService) rejectInput(field, reason string) error {
	util.ValidationFailuresTotal.WithLabelValues("invalid_input").Inc()
	return &models.ValidationError{Field: field, Reason: reason}
}
