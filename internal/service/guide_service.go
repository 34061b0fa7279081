package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
)

var validDifficulties = map[string]bool{
	entity.DifficultyBeginner:     true,
	entity.DifficultyIntermediate: true,
	entity.DifficultyAdvanced:     true,
}

var validStepTypes = map[string]bool{
	entity.StepTypeAssembly:   true,
	entity.StepTypeSoldering:  true,
	entity.StepTypeFirmware:   true,
	entity.StepType3DPrint:    true,
	entity.StepTypeInspection: true,
}

// GuideService build guide CRUD. Steps are owned by their guide and replaced
// wholesale on update.
type GuideService struct {
	guideRepo *repository.GuideRepository
	modelRepo *repository.DroneModelRepository
}

func NewGuideService(guideRepo *repository.GuideRepository, modelRepo *repository.DroneModelRepository) *GuideService {
	return &GuideService{guideRepo: guideRepo, modelRepo: modelRepo}
}

// StepInput one step of a guide payload
type StepInput struct {
	Order                int      `json:"order" binding:"required"`
	Title                string   `json:"title" binding:"required"`
	Description          string   `json:"description"`
	SafetyWarning        string   `json:"safety_warning"`
	ReferenceImage       string   `json:"reference_image"`
	STLFile              string   `json:"stl_file"`
	BetaflightCLI        string   `json:"betaflight_cli"`
	StepType             string   `json:"step_type"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	RequiredComponents   []string `json:"required_components"`
}

// GuideInput guide create/update payload
type GuideInput struct {
	PID                  string                 `json:"pid" binding:"required"`
	Name                 string                 `json:"name" binding:"required"`
	Description          string                 `json:"description"`
	Difficulty           string                 `json:"difficulty"`
	EstimatedTimeMinutes int                    `json:"estimated_time_minutes"`
	DroneClass           string                 `json:"drone_class"`
	Thumbnail            string                 `json:"thumbnail"`
	DroneModelPID        string                 `json:"drone_model_pid"`
	RequiredTools        []string               `json:"required_tools"`
	Settings             map[string]interface{} `json:"settings"`
	Steps                []StepInput            `json:"steps"`
}

func jsonList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

func (s *GuideService) validateInput(input *GuideInput) error {
	if input.Difficulty == "" {
		input.Difficulty = entity.DifficultyBeginner
	}
	if !validDifficulties[input.Difficulty] {
		return fmt.Errorf("invalid difficulty %q", input.Difficulty)
	}
	if input.EstimatedTimeMinutes == 0 {
		input.EstimatedTimeMinutes = 60
	}
	seen := make(map[int]bool, len(input.Steps))
	for i := range input.Steps {
		step := &input.Steps[i]
		if step.StepType == "" {
			step.StepType = entity.StepTypeAssembly
		}
		if !validStepTypes[step.StepType] {
			return fmt.Errorf("step %d: invalid step_type %q", step.Order, step.StepType)
		}
		if step.EstimatedTimeMinutes == 0 {
			step.EstimatedTimeMinutes = 5
		}
		if seen[step.Order] {
			return fmt.Errorf("duplicate step order %d", step.Order)
		}
		seen[step.Order] = true
	}
	return nil
}

// resolveModelID maps an optional drone model PID to its row ID. A PID that
// resolves to nothing is an error here, unlike the soft references inside
// step payloads.
func (s *GuideService) resolveModelID(ctx context.Context, modelPID string) (*string, error) {
	if modelPID == "" {
		return nil, nil
	}
	model, err := s.modelRepo.FindByPID(ctx, modelPID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("unknown drone model %q", modelPID)
		}
		return nil, err
	}
	return &model.ID, nil
}

func buildSteps(guideID string, inputs []StepInput) []entity.BuildGuideStep {
	steps := make([]entity.BuildGuideStep, 0, len(inputs))
	for _, in := range inputs {
		steps = append(steps, entity.BuildGuideStep{
			ID:                   repository.NewID(),
			GuideID:              guideID,
			Order:                in.Order,
			Title:                in.Title,
			Description:          in.Description,
			SafetyWarning:        in.SafetyWarning,
			ReferenceImage:       in.ReferenceImage,
			STLFile:              in.STLFile,
			BetaflightCLI:        in.BetaflightCLI,
			StepType:             in.StepType,
			EstimatedTimeMinutes: in.EstimatedTimeMinutes,
			RequiredComponents:   jsonList(in.RequiredComponents),
		})
	}
	return steps
}

func (s *GuideService) List(ctx context.Context) ([]entity.BuildGuide, error) {
	return s.guideRepo.List(ctx)
}

func (s *GuideService) Get(ctx context.Context, pid string) (*entity.BuildGuide, error) {
	return s.guideRepo.FindByPID(ctx, pid)
}

func (s *GuideService) Create(ctx context.Context, input GuideInput) (*entity.BuildGuide, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	modelID, err := s.resolveModelID(ctx, input.DroneModelPID)
	if err != nil {
		return nil, err
	}

	guide := &entity.BuildGuide{
		ID:                   repository.NewID(),
		PID:                  input.PID,
		Name:                 input.Name,
		Description:          input.Description,
		Difficulty:           input.Difficulty,
		EstimatedTimeMinutes: input.EstimatedTimeMinutes,
		DroneClass:           input.DroneClass,
		Thumbnail:            input.Thumbnail,
		DroneModelID:         modelID,
		RequiredTools:        jsonList(input.RequiredTools),
		Settings:             input.Settings,
	}
	guide.Steps = buildSteps(guide.ID, input.Steps)

	if err := s.guideRepo.Create(ctx, guide); err != nil {
		return nil, fmt.Errorf("create guide: %w", err)
	}
	return guide, nil
}

// Update overwrites guide fields and replaces the entire step set; previously
// attached steps never survive an update
func (s *GuideService) Update(ctx context.Context, pid string, input GuideInput) (*entity.BuildGuide, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	guide, err := s.guideRepo.FindByPID(ctx, pid)
	if err != nil {
		return nil, err
	}
	modelID, err := s.resolveModelID(ctx, input.DroneModelPID)
	if err != nil {
		return nil, err
	}

	guide.Name = input.Name
	guide.Description = input.Description
	guide.Difficulty = input.Difficulty
	guide.EstimatedTimeMinutes = input.EstimatedTimeMinutes
	guide.DroneClass = input.DroneClass
	guide.Thumbnail = input.Thumbnail
	guide.DroneModelID = modelID
	guide.RequiredTools = jsonList(input.RequiredTools)
	guide.Settings = input.Settings
	guide.Steps = nil
	guide.DroneModel = nil

	steps := buildSteps(guide.ID, input.Steps)
	if err := s.guideRepo.Update(ctx, guide, steps); err != nil {
		return nil, fmt.Errorf("update guide: %w", err)
	}
	return s.guideRepo.FindByPID(ctx, pid)
}

func (s *GuideService) Delete(ctx context.Context, pid string) error {
	return s.guideRepo.Delete(ctx, pid)
}
