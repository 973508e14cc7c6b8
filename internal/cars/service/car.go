package service

import (
	"context"

	"carrental/internal/cars/repository"
	"carrental/pkg/config"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
)

type CarService interface {
	List(ctx context.Context) ([]*model.Car, error)
}

type carService struct {
	repo repository.CarRepository
	cfg  *config.Config
}

func NewCarService(repo repository.CarRepository, cfg *config.Config) CarService {
	return &carService{repo: repo, cfg: cfg}
}

func (s *carService) List(ctx context.Context) ([]*model.Car, error) {
	cars, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list cars", "error", err)
		return nil, apperrors.Internal("Server error", err)
	}
	if cars == nil {
		cars = []*model.Car{}
	}
	return cars, nil
}
