package category

import (
	"context"
	"log/slog"

	"github.com/kkpa/jbh/internal/core/common/pagination"
	categoryDatamodel "github.com/kkpa/jbh/internal/core/datamodel/category"
	"github.com/kkpa/jbh/internal/core/events"
)

type RepositoryAPI interface {
	FindAll(ctx context.Context, pageable pagination.Pageable) ([]*categoryDatamodel.Category, int64, error)
	FindByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error)
	Save(ctx context.Context, category *categoryDatamodel.Category) error
	DeleteByID(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

// Save validates dto and inserts it when it has no ID, otherwise replaces
// the stored row. A replace of an unknown ID inserts it.
func (s *Service) Save(ctx context.Context, dto *Category) (*Category, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr.WithEntity(EntityName)
	}

	entity := ToDataModel(dto)
	action := events.ActionCreated
	if entity.ID != 0 {
		action = events.ActionUpdated
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		s.logger.Error("failed to save category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.publish(ctx, action, entity.ID)
	s.logger.Debug("category saved", "id", entity.ID, "action", action)
	return FromDataModel(entity), nil
}

func (s *Service) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[*Category], error) {
	rows, total, err := s.repo.FindAll(ctx, pageable)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return pagination.Page[*Category]{}, err
	}

	page := pagination.NewPage(rows, pageable, total)
	return pagination.Map(page, FromDataModel), nil
}

// FindOne returns nil without error when no category has id.
func (s *Service) FindOne(ctx context.Context, id int64) (*Category, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "id", id)
		return nil, err
	}
	return FromDataModel(row), nil
}

// Delete does not check that id exists.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "id", id)
		return err
	}
	s.publish(ctx, events.ActionDeleted, id)
	return nil
}

func (s *Service) publish(ctx context.Context, action events.Action, id int64) {
	if err := s.events.Publish(ctx, events.NewEntityEvent(EntityName, action, id)); err != nil {
		s.logger.Warn("failed to publish category event", "error", err, "id", id, "action", action)
	}
}
