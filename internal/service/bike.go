package service

import (
	"context"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/pricing"
	"bikeshop-rental-backend/internal/repository"
)

type bikeService struct {
	bikeRepo repository.BikeRepository
}

func NewBikeService(bikeRepo repository.BikeRepository) BikeService {
	return &bikeService{bikeRepo: bikeRepo}
}

func (s *bikeService) AddBike(ctx context.Context, bike *domain.Bike) error {
	if bike.Name == "" {
		return domain.NewValidationError("name", "bike name is required")
	}
	if bike.Availability == "" {
		bike.Availability = domain.AvailabilityAvailable
	}
	return s.bikeRepo.Create(ctx, bike)
}

func (s *bikeService) GetBike(ctx context.Context, bikeID int32) (*domain.Bike, error) {
	return s.bikeRepo.GetByID(ctx, bikeID)
}

func (s *bikeService) UpdateBike(ctx context.Context, bike *domain.Bike) error {
	return s.bikeRepo.Update(ctx, bike)
}

func (s *bikeService) ListRentalCatalog(ctx context.Context, category domain.BikeCategory) ([]domain.Bike, error) {
	return s.bikeRepo.ListForRental(ctx, category)
}

func (s *bikeService) PriceQuote(ctx context.Context, bikeID int32, tier domain.RentalTier) (int64, error) {
	if !domain.ValidTier(tier) {
		return 0, domain.NewValidationError("tier", "unknown rental tier")
	}
	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return 0, err
	}
	price := pricing.PriceFor(bike, tier)
	if price == 0 {
		return 0, domain.NewValidationError("tier", "bike has no price for this tier")
	}
	return price, nil
}

func (s *bikeService) StartMaintenance(ctx context.Context, bikeID int32, notes string) error {
	if err := s.bikeRepo.SetAvailability(ctx, bikeID, domain.AvailabilityAvailable, domain.AvailabilityMaintenance); err != nil {
		return err
	}
	if notes != "" {
		bike, err := s.bikeRepo.GetByID(ctx, bikeID)
		if err != nil {
			return err
		}
		bike.MaintenanceNotes = notes
		return s.bikeRepo.Update(ctx, bike)
	}
	return nil
}

func (s *bikeService) EndMaintenance(ctx context.Context, bikeID int32) error {
	return s.bikeRepo.SetAvailability(ctx, bikeID, domain.AvailabilityMaintenance, domain.AvailabilityAvailable)
}
