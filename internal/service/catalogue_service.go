package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tedstrazimiri/droneclear/internal/catalogue"
	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/schema"
)

// CatalogueService component, category and drone model records plus the bulk
// import/export round trip against the flat catalogue JSON shape
type CatalogueService struct {
	catRepo   *repository.CategoryRepository
	compRepo  *repository.ComponentRepository
	modelRepo *repository.DroneModelRepository
	logger    *zap.Logger
}

func NewCatalogueService(catRepo *repository.CategoryRepository, compRepo *repository.ComponentRepository, modelRepo *repository.DroneModelRepository, logger *zap.Logger) *CatalogueService {
	return &CatalogueService{
		catRepo:   catRepo,
		compRepo:  compRepo,
		modelRepo: modelRepo,
		logger:    logger,
	}
}

// ListCategories returns all categories with component counts
func (s *CatalogueService) ListCategories(ctx context.Context) ([]repository.CategoryCount, error) {
	return s.catRepo.ListWithCounts(ctx)
}

// ComponentInput fields accepted when creating or updating a component
type ComponentInput struct {
	PID          string                 `json:"pid" binding:"required"`
	Category     string                 `json:"category" binding:"required"`
	Name         string                 `json:"name" binding:"required"`
	Manufacturer string                 `json:"manufacturer"`
	Description  string                 `json:"description"`
	Link         string                 `json:"link"`
	ApproxPrice  string                 `json:"approx_price"`
	ImageFile    string                 `json:"image_file"`
	ManualLink   string                 `json:"manual_link"`
	SchemaData   map[string]interface{} `json:"schema_data"`
}

// ListComponents returns a page of components, optionally filtered by category
func (s *CatalogueService) ListComponents(ctx context.Context, categorySlug string, page, pageSize int) ([]entity.Component, int64, error) {
	return s.compRepo.List(ctx, categorySlug, page, pageSize)
}

// GetComponent finds a component by PID
func (s *CatalogueService) GetComponent(ctx context.Context, pid string) (*entity.Component, error) {
	return s.compRepo.FindByPID(ctx, pid)
}

// CreateComponent creates a component. The category is created implicitly on
// first reference.
func (s *CatalogueService) CreateComponent(ctx context.Context, input ComponentInput) (*entity.Component, error) {
	cat, err := s.catRepo.GetOrCreate(ctx, input.Category)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	manufacturer := input.Manufacturer
	if manufacturer == "" {
		manufacturer = "Unknown"
	}

	comp := &entity.Component{
		ID:           repository.NewID(),
		PID:          input.PID,
		CategoryID:   cat.ID,
		Name:         input.Name,
		Manufacturer: manufacturer,
		Description:  input.Description,
		Link:         input.Link,
		ApproxPrice:  input.ApproxPrice,
		ImageFile:    input.ImageFile,
		ManualLink:   input.ManualLink,
		SchemaData:   input.SchemaData,
	}
	if err := s.compRepo.Create(ctx, comp); err != nil {
		return nil, fmt.Errorf("create component: %w", err)
	}
	comp.Category = cat
	return comp, nil
}

// UpdateComponent overwrites a component's stored fields
func (s *CatalogueService) UpdateComponent(ctx context.Context, pid string, input ComponentInput) (*entity.Component, error) {
	comp, err := s.compRepo.FindByPID(ctx, pid)
	if err != nil {
		return nil, err
	}

	cat, err := s.catRepo.GetOrCreate(ctx, input.Category)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	comp.CategoryID = cat.ID
	comp.Name = input.Name
	comp.Manufacturer = input.Manufacturer
	comp.Description = input.Description
	comp.Link = input.Link
	comp.ApproxPrice = input.ApproxPrice
	comp.ImageFile = input.ImageFile
	comp.ManualLink = input.ManualLink
	comp.SchemaData = input.SchemaData

	if err := s.compRepo.Update(ctx, comp); err != nil {
		return nil, fmt.Errorf("update component: %w", err)
	}
	comp.Category = cat
	return comp, nil
}

// DeleteComponent removes a component by PID
func (s *CatalogueService) DeleteComponent(ctx context.Context, pid string) error {
	return s.compRepo.Delete(ctx, pid)
}

// Drone model CRUD

func (s *CatalogueService) ListModels(ctx context.Context) ([]entity.DroneModel, error) {
	return s.modelRepo.List(ctx)
}

func (s *CatalogueService) GetModel(ctx context.Context, pid string) (*entity.DroneModel, error) {
	return s.modelRepo.FindByPID(ctx, pid)
}

func (s *CatalogueService) CreateModel(ctx context.Context, model *entity.DroneModel) error {
	model.ID = repository.NewID()
	return s.modelRepo.Create(ctx, model)
}

func (s *CatalogueService) UpdateModel(ctx context.Context, pid string, updated *entity.DroneModel) (*entity.DroneModel, error) {
	model, err := s.modelRepo.FindByPID(ctx, pid)
	if err != nil {
		return nil, err
	}
	model.Name = updated.Name
	model.Description = updated.Description
	model.ImageFile = updated.ImageFile
	model.PDFFile = updated.PDFFile
	model.VehicleType = updated.VehicleType
	model.BuildClass = updated.BuildClass
	model.Relations = updated.Relations
	if err := s.modelRepo.Update(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *CatalogueService) DeleteModel(ctx context.Context, pid string) error {
	return s.modelRepo.Delete(ctx, pid)
}

// ImportError one rejected entry of a bulk import
type ImportError struct {
	Index int    `json:"index"`
	PID   string `json:"pid"`
	Error string `json:"error"`
}

// ImportReport outcome of a bulk import. Partial success is the norm: valid
// entries commit even when others fail.
type ImportReport struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Errors  []ImportError `json:"errors"`
}

// Import bulk-upserts flat part objects by PID. Each entry is processed
// independently; a bad entry records a per-index error and the batch moves
// on. Maximal data capture beats strict correctness here.
func (s *CatalogueService) Import(ctx context.Context, parts []map[string]interface{}) (*ImportReport, error) {
	report := &ImportReport{Errors: []ImportError{}}

	for i, obj := range parts {
		pid := catalogue.StringField(obj, "pid")
		catSlug := catalogue.StringField(obj, "category")
		name := catalogue.StringField(obj, "name")

		if pid == "" || catSlug == "" || name == "" {
			report.Errors = append(report.Errors, ImportError{
				Index: i,
				PID:   pid,
				Error: "missing required field (pid, category, name)",
			})
			continue
		}

		cat, err := s.catRepo.FindBySlug(ctx, catSlug)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				report.Errors = append(report.Errors, ImportError{
					Index: i,
					PID:   pid,
					Error: fmt.Sprintf("unknown category %q", catSlug),
				})
				continue
			}
			return nil, fmt.Errorf("resolve category: %w", err)
		}

		manufacturer := catalogue.StringField(obj, "manufacturer")
		if manufacturer == "" {
			manufacturer = "Unknown"
		}

		existing, err := s.compRepo.FindByPID(ctx, pid)
		switch {
		case err == nil:
			existing.CategoryID = cat.ID
			existing.Name = name
			existing.Manufacturer = manufacturer
			existing.Description = catalogue.StringField(obj, "description")
			existing.Link = catalogue.StringField(obj, "link")
			existing.ApproxPrice = catalogue.PriceField(obj)
			existing.ImageFile = catalogue.StringField(obj, "image_file")
			existing.ManualLink = catalogue.StringField(obj, "manual_link")
			existing.SchemaData = catalogue.SpecData(obj)
			if err := s.compRepo.Update(ctx, existing); err != nil {
				report.Errors = append(report.Errors, ImportError{Index: i, PID: pid, Error: err.Error()})
				continue
			}
			report.Updated++

		case errors.Is(err, repository.ErrNotFound):
			comp := &entity.Component{
				ID:           repository.NewID(),
				PID:          pid,
				CategoryID:   cat.ID,
				Name:         name,
				Manufacturer: manufacturer,
				Description:  catalogue.StringField(obj, "description"),
				Link:         catalogue.StringField(obj, "link"),
				ApproxPrice:  catalogue.PriceField(obj),
				ImageFile:    catalogue.StringField(obj, "image_file"),
				ManualLink:   catalogue.StringField(obj, "manual_link"),
				SchemaData:   catalogue.SpecData(obj),
			}
			if err := s.compRepo.Create(ctx, comp); err != nil {
				report.Errors = append(report.Errors, ImportError{Index: i, PID: pid, Error: err.Error()})
				continue
			}
			report.Created++

		default:
			return nil, fmt.Errorf("lookup component %s: %w", pid, err)
		}
	}

	s.logger.Info("Import finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// ImportModels upserts drone model objects from a catalogue file by PID
func (s *CatalogueService) ImportModels(ctx context.Context, models []map[string]interface{}) (created, updated int, err error) {
	for _, obj := range models {
		pid := catalogue.StringField(obj, "pid")
		if pid == "" {
			continue
		}

		relations, _ := obj["relations"].(map[string]interface{})

		existing, findErr := s.modelRepo.FindByPID(ctx, pid)
		switch {
		case findErr == nil:
			existing.Name = catalogue.StringField(obj, "name")
			existing.Description = catalogue.StringField(obj, "description")
			existing.ImageFile = catalogue.StringField(obj, "image_file")
			existing.PDFFile = catalogue.StringField(obj, "pdf_file")
			existing.VehicleType = catalogue.StringField(obj, "vehicle_type")
			existing.BuildClass = catalogue.StringField(obj, "build_class")
			existing.Relations = relations
			if err := s.modelRepo.Update(ctx, existing); err != nil {
				return created, updated, err
			}
			updated++
		case errors.Is(findErr, repository.ErrNotFound):
			model := &entity.DroneModel{
				ID:          repository.NewID(),
				PID:         pid,
				Name:        catalogue.StringField(obj, "name"),
				Description: catalogue.StringField(obj, "description"),
				ImageFile:   catalogue.StringField(obj, "image_file"),
				PDFFile:     catalogue.StringField(obj, "pdf_file"),
				VehicleType: catalogue.StringField(obj, "vehicle_type"),
				BuildClass:  catalogue.StringField(obj, "build_class"),
				Relations:   relations,
			}
			if err := s.modelRepo.Create(ctx, model); err != nil {
				return created, updated, err
			}
			created++
		default:
			return created, updated, findErr
		}
	}
	return created, updated, nil
}

// Export flattens the store back into the catalogue file shape. Every
// category appears, empty or not, and the result re-imports without loss.
func (s *CatalogueService) Export(ctx context.Context, categorySlug string) (*catalogue.File, error) {
	cats, err := s.catRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := &catalogue.File{
		SchemaVersion: catalogue.SchemaVersion,
		Metadata: catalogue.Metadata{
			ExportedAt: time.Now().UTC().Format(time.RFC3339),
			Source:     "DroneClear - Live Catalogue Builder",
			Notes:      "Generated from live SQL database.",
		},
		Components:  make(map[string][]map[string]interface{}),
		DroneModels: []map[string]interface{}{},
	}

	for _, cat := range cats {
		if categorySlug != "" && cat.Slug != categorySlug {
			continue
		}
		comps, err := s.compRepo.ListAll(ctx, cat.Slug)
		if err != nil {
			return nil, fmt.Errorf("list components for %s: %w", cat.Slug, err)
		}
		list := make([]map[string]interface{}, 0, len(comps))
		for i := range comps {
			list = append(list, catalogue.Flatten(&comps[i]))
		}
		out.Components[cat.Slug] = list
	}

	if categorySlug == "" {
		models, err := s.modelRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list drone models: %w", err)
		}
		for i := range models {
			out.DroneModels = append(out.DroneModels, catalogue.FlattenModel(&models[i]))
		}
	}

	return out, nil
}

// ResetReport outcome of a golden reseed
type ResetReport struct {
	DeletedComponents int `json:"deleted_components"`
	DeletedModels     int `json:"deleted_models"`
	Categories        int `json:"categories"`
	Components        int `json:"components"`
	Models            int `json:"models"`
}

// ResetToGolden wipes all components, drone models and categories, then
// reseeds from the golden schema document. Destructive; the caller is
// responsible for confirming intent. Repeat runs against the same document
// converge to the same state.
func (s *CatalogueService) ResetToGolden(ctx context.Context, doc schema.Document) (*ResetReport, error) {
	if errs := schema.Validate(doc); len(errs) > 0 {
		return nil, &schema.ValidationError{Problems: errs}
	}

	report := &ResetReport{}

	comps, err := s.compRepo.ListAll(ctx, "")
	if err != nil {
		return nil, err
	}
	report.DeletedComponents = len(comps)
	models, err := s.modelRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	report.DeletedModels = len(models)

	if err := s.compRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("wipe components: %w", err)
	}
	if err := s.modelRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("wipe drone models: %w", err)
	}
	if err := s.catRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("wipe categories: %w", err)
	}

	for slug, items := range doc.Templates() {
		cat := &entity.Category{
			ID:   repository.NewID(),
			Slug: slug,
			Name: repository.DisplayName(slug),
		}
		if err := s.catRepo.Create(ctx, cat); err != nil {
			return nil, fmt.Errorf("seed category %s: %w", slug, err)
		}
		report.Categories++

		for _, item := range items {
			pid := catalogue.StringField(item, "pid")
			if pid == "" {
				continue
			}
			manufacturer := catalogue.StringField(item, "manufacturer")
			if manufacturer == "" {
				manufacturer = "Unknown"
			}
			comp := &entity.Component{
				ID:           repository.NewID(),
				PID:          pid,
				CategoryID:   cat.ID,
				Name:         catalogue.StringField(item, "name"),
				Manufacturer: manufacturer,
				Description:  catalogue.StringField(item, "description"),
				Link:         catalogue.StringField(item, "link"),
				ApproxPrice:  catalogue.PriceField(item),
				ImageFile:    catalogue.StringField(item, "image_file"),
				ManualLink:   catalogue.StringField(item, "manual_link"),
				SchemaData:   catalogue.SpecData(item),
			}
			if err := s.compRepo.Create(ctx, comp); err != nil {
				return nil, fmt.Errorf("seed component %s: %w", pid, err)
			}
			report.Components++
		}
	}

	if rawModels, ok := doc["drone_models"].([]interface{}); ok {
		for _, raw := range rawModels {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			pid := catalogue.StringField(item, "pid")
			if pid == "" {
				continue
			}
			relations, _ := item["relations"].(map[string]interface{})
			model := &entity.DroneModel{
				ID:          repository.NewID(),
				PID:         pid,
				Name:        catalogue.StringField(item, "name"),
				Description: catalogue.StringField(item, "description"),
				ImageFile:   catalogue.StringField(item, "image_file"),
				PDFFile:     catalogue.StringField(item, "pdf_file"),
				VehicleType: catalogue.StringField(item, "vehicle_type"),
				BuildClass:  catalogue.StringField(item, "build_class"),
				Relations:   relations,
			}
			if err := s.modelRepo.Create(ctx, model); err != nil {
				return nil, fmt.Errorf("seed drone model %s: %w", pid, err)
			}
			report.Models++
		}
	}

	s.logger.Info("Reset to golden complete",
		zap.Int("categories", report.Categories),
		zap.Int("components", report.Components),
		zap.Int("models", report.Models),
	)
	return report, nil
}
