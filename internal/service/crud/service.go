// Package crud holds the entity service shared by every record type:
// validation before writes, reference checks, and translation of
// repository outcomes into the error taxonomy.
package crud

import (
	"context"

	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/pkg/errors"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

// Servicer is the surface exposed to the presentation layer.
type Servicer[T any, K comparable] interface {
	Create(ctx context.Context, entity *T) error
	Get(ctx context.Context, key K) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, key K) error
}

// ReferenceCheck returns a *errors.NotFoundError for the first entity
// referenced by entity that does not exist.
type ReferenceCheck[T any] func(ctx context.Context, entity *T) error

type Config[T any, K comparable] struct {
	Entity     string
	Repo       repository.CRUD[T, K]
	KeyOf      func(*T) K
	Validator  validator.Validator
	References ReferenceCheck[T]
	Logger     *logger.Logger
}

type Service[T any, K comparable] struct {
	entity     string
	repo       repository.CRUD[T, K]
	keyOf      func(*T) K
	validator  validator.Validator
	references ReferenceCheck[T]
	log        *logger.Logger
}

func NewService[T any, K comparable](cfg Config[T, K]) *Service[T, K] {
	s := &Service[T, K]{
		entity:     cfg.Entity,
		repo:       cfg.Repo,
		keyOf:      cfg.KeyOf,
		validator:  cfg.Validator,
		references: cfg.References,
		log:        cfg.Logger,
	}
	if s.validator == nil {
		s.validator = validator.New()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.With("entity", s.entity)
	return s
}

func (s *Service[T, K]) Create(ctx context.Context, entity *T) error {
	if err := s.checkWrite(ctx, entity); err != nil {
		return err
	}

	key := s.keyOf(entity)
	ok, err := s.repo.Create(ctx, entity)
	if err != nil {
		s.log.Error(err, "create failed", "key", key)
		return errors.NewDatabase("create "+s.entity, err)
	}
	if !ok {
		err := errors.NewDatabase("create "+s.entity, errNoRowInserted)
		s.log.Error(err, "create failed", "key", key)
		return err
	}

	s.log.Info("created", "key", key)
	return nil
}

func (s *Service[T, K]) Get(ctx context.Context, key K) (*T, error) {
	entity, found, err := s.repo.ReadByKey(ctx, key)
	if err != nil {
		s.log.Error(err, "read failed", "key", key)
		return nil, errors.NewDatabase("get "+s.entity, err)
	}
	if !found {
		return nil, errors.NewNotFound(s.entity, key)
	}
	return entity, nil
}

func (s *Service[T, K]) List(ctx context.Context) ([]T, error) {
	entities, err := s.repo.ReadAll(ctx)
	if err != nil {
		s.log.Error(err, "list failed")
		return nil, errors.NewDatabase("list "+s.entity, err)
	}
	if entities == nil {
		entities = make([]T, 0)
	}
	return entities, nil
}

func (s *Service[T, K]) Update(ctx context.Context, entity *T) error {
	if err := s.checkWrite(ctx, entity); err != nil {
		return err
	}

	key := s.keyOf(entity)
	ok, err := s.repo.Update(ctx, entity)
	if err != nil {
		s.log.Error(err, "update failed", "key", key)
		return errors.NewDatabase("update "+s.entity, err)
	}
	if !ok {
		return errors.NewNotFound(s.entity, key)
	}

	s.log.Info("updated", "key", key)
	return nil
}

func (s *Service[T, K]) Delete(ctx context.Context, key K) error {
	ok, err := s.repo.Delete(ctx, key)
	if err != nil {
		s.log.Error(err, "delete failed", "key", key)
		return errors.NewDatabase("delete "+s.entity, err)
	}
	if !ok {
		return errors.NewNotFound(s.entity, key)
	}

	s.log.Info("deleted", "key", key)
	return nil
}

// checkWrite validates entity and then its references. Nothing is written
// when either fails.
func (s *Service[T, K]) checkWrite(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewValidation(s.entity, "required")
	}
	if err := s.validator.Validate(entity); err != nil {
		return err
	}
	if s.references != nil {
		if err := s.references(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// Require reports a *errors.NotFoundError when key is absent from repo, and
// a *errors.DatabaseError when the lookup itself fails.
func Require[T any, K comparable](ctx context.Context, repo repository.CRUD[T, K], entity string, key K) error {
	_, found, err := repo.ReadByKey(ctx, key)
	if err != nil {
		return errors.NewDatabase("check "+entity, err)
	}
	if !found {
		return errors.NewNotFound(entity, key)
	}
	return nil
}
