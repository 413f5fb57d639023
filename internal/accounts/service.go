package accounts

import (
	"context"
	"log/slog"

	"github.com/kkpa/jbh/internal/core/common/pagination"
	accountsDatamodel "github.com/kkpa/jbh/internal/core/datamodel/accounts"
	"github.com/kkpa/jbh/internal/core/events"
)

type RepositoryAPI interface {
	FindAll(ctx context.Context, pageable pagination.Pageable) ([]*accountsDatamodel.Accounts, int64, error)
	FindByID(ctx context.Context, id int64) (*accountsDatamodel.Accounts, error)
	Save(ctx context.Context, account *accountsDatamodel.Accounts) error
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

func (s *Service) Save(ctx context.Context, dto *Accounts) (*Accounts, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr.WithEntity(EntityName)
	}

	entity := ToDataModel(dto)
	action := events.ActionCreated
	if entity.ID != 0 {
		action = events.ActionUpdated
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		s.logger.Error("failed to save account", "error", err)
		return nil, err
	}

	s.publish(ctx, action, entity.ID)
	return FromDataModel(entity), nil
}

func (s *Service) FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[*Accounts], error) {
	rows, total, err := s.repo.FindAll(ctx, pageable)
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err, "page", pageable.Page)
		return pagination.Page[*Accounts]{}, err
	}
	return pagination.Map(pagination.NewPage(rows, pageable, total), FromDataModel), nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*Accounts, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get account", "error", err, "id", id)
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("failed to delete account", "error", err, "id", id)
		return err
	}
	s.publish(ctx, events.ActionDeleted, id)
	return nil
}

func (s *Service) publish(ctx context.Context, action events.Action, id int64) {
	if err := s.events.Publish(ctx, events.NewEntityEvent(EntityName, action, id)); err != nil {
		s.logger.Warn("failed to publish account event", "error", err, "id", id)
	}
}
