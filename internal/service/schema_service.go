package service

import (
	"github.com/tedstrazimiri/droneclear/internal/schema"
)

// SchemaService thin pass-through over the schema store; exists so handlers
// depend on services uniformly
type SchemaService struct {
	store *schema.Store
}

func NewSchemaService(store *schema.Store) *SchemaService {
	return &SchemaService{store: store}
}

func (s *SchemaService) Get() (schema.Document, error) {
	return s.store.Read()
}

func (s *SchemaService) Replace(doc schema.Document) error {
	return s.store.Write(doc)
}

func (s *SchemaService) Store() *schema.Store {
	return s.store
}
