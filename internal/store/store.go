package store

import (
	"encoding/json"
	"os"

	"inventory-service/internal/models"
	"inventory-service/internal/util"

	"go.uber.org/zap"
)

// legacyProductNames are stripped from the catalog on every load. This is a
// data migration carried over from old seed files; the products are removed
// regardless of their other fields.
var legacyProductNames = []string{"Producto A", "Producto B"}

// Store owns the on-disk JSON document. Load creates a default empty
// document if the file is absent and normalizes old data into the current
// shape; Save rewrites the whole file. Save is not atomic: a crash mid-write
// can corrupt the store.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store backed by the file at path. The file is not
// touched until Load or Save is called.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: util.GetLogger(),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file into a document. If the file does not exist,
// an empty default document is written and returned. Existing data is
// normalized: legacy products are stripped, nil collections are defaulted,
// and transactions missing an id or kind are backfilled. A file that exists
// but does not decode as a document yields a MalformedDocumentError; other
// I/O errors propagate as-is.
func (s *Store) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := models.NewDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		util.StoreLoadsTotal.Inc()
		s.logger.Info("Created empty inventory store", zap.String("path", s.path))
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &models.MalformedDocumentError{Path: s.path, Err: err}
	}

	normalize(&doc)
	util.StoreLoadsTotal.Inc()
	s.logger.Info("Loaded inventory store",
		zap.String("path", s.path),
		zap.Int("products", len(doc.Products)),
		zap.Int("transactions", len(doc.Transactions)))
	return &doc, nil
}

// Save serializes the full document, pretty-printed for human readability,
// and overwrites the backing file.
func (s *Store) Save(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	util.StoreSavesTotal.Inc()
	return nil
}

// normalize repairs old on-disk data into the current shape. Applied on
// every load; idempotent once applied.
func normalize(doc *models.Document) {
	products := doc.Products
	if products == nil {
		products = []models.Product{}
	}
	kept := products[:0]
	for _, p := range products {
		if !isLegacyName(p.Name) {
			kept = append(kept, p)
		}
	}
	doc.Products = kept

	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}
	for i := range doc.Transactions {
		// Positional backfill only: existing explicit ids are kept,
		// even if the assigned id collides with one of them.
		if doc.Transactions[i].ID == 0 {
			doc.Transactions[i].ID = i + 1
		}
		if doc.Transactions[i].Kind == "" {
			doc.Transactions[i].Kind = models.KindUnknown
		}
	}
}

func isLegacyName(name string) bool {
	for _, legacy := range legacyProductNames {
		if name == legacy {
			return true
		}
	}
	return false
}
