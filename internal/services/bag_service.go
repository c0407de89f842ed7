package services

import (
	"fmt"
	"sort"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"
	"surplussaver/pkg/geo"
)

// Sort orders accepted by Browse. Any other value leaves the query order
// untouched.
const (
	SortByPrice    = "price"
	SortByDistance = "distance"
)

// BrowseParams are the optional browse filters. Radius only applies when
// both coordinates are present.
type BrowseParams struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	Category  string
	SortBy    string
}

// BagService handles the bag lifecycle and the browse pipeline.
type BagService struct {
	bagRepo  repositories.BagRepository
	userRepo repositories.UserRepository
}

// NewBagService creates a new BagService.
func NewBagService(bagRepo repositories.BagRepository, userRepo repositories.UserRepository) *BagService {
	return &BagService{
		bagRepo:  bagRepo,
		userRepo: userRepo,
	}
}

// CreateBag lists a new bag for an approved shop. Ownership and role are
// enforced at the API boundary; the approval flag is checked here because it
// lives on the user record.
func (s *BagService) CreateBag(shopID string, bag *models.Bag) error {
	shop, err := s.userRepo.GetByID(shopID)
	if err != nil {
		return err
	}
	if shop.Role != models.RoleShop || !shop.Approved {
		return fmt.Errorf("%w: shop %s is not an approved shop", apperrors.ErrForbidden, shopID)
	}

	bag.ShopID = shopID
	bag.Shop = nil
	bag.Status = models.BagStatusAvailable
	return s.bagRepo.Create(bag)
}

// UpdateBag replaces the mutable fields of a bag owned by the shop. The bag
// must exist under that shop; its status is not a precondition here.
func (s *BagService) UpdateBag(shopID, bagID string, spec *models.Bag) (*models.Bag, error) {
	bag, err := s.bagRepo.GetByIDForShop(bagID, shopID)
	if err != nil {
		return nil, err
	}

	bag.Description = spec.Description
	bag.Price = spec.Price
	bag.Quantity = spec.Quantity
	bag.PickupStart = spec.PickupStart
	bag.PickupEnd = spec.PickupEnd
	bag.Category = spec.Category

	if err := s.bagRepo.Update(bag); err != nil {
		return nil, err
	}
	return bag, nil
}

// DeleteBag removes a bag owned by the shop. Sold bags cannot be deleted.
func (s *BagService) DeleteBag(shopID, bagID string) error {
	bag, err := s.bagRepo.GetByIDForShop(bagID, shopID)
	if err != nil {
		return err
	}
	if bag.Status != models.BagStatusAvailable {
		return fmt.Errorf("%w: bag %s is sold and cannot be deleted", apperrors.ErrConflict, bagID)
	}
	return s.bagRepo.Delete(bagID)
}

// ListByShop returns every bag listed by a shop.
func (s *BagService) ListByShop(shopID string) ([]models.Bag, error) {
	return s.bagRepo.ListByShop(shopID)
}

// Browse returns available bags, each augmented with the haversine distance
// from the caller when coordinates were supplied. The radius filter never
// excludes bags whose distance could not be computed.
func (s *BagService) Browse(params BrowseParams) ([]models.BrowseResult, error) {
	bags, err := s.bagRepo.ListAvailable(params.Category)
	if err != nil {
		return nil, err
	}

	hasPoint := params.Latitude != nil && params.Longitude != nil

	results := make([]models.BrowseResult, 0, len(bags))
	for _, bag := range bags {
		res := models.BrowseResult{Bag: bag}

		if hasPoint && bag.Shop != nil {
			d := geo.Distance(*params.Latitude, *params.Longitude, bag.Shop.Latitude, bag.Shop.Longitude)
			res.DistanceKm = &d
		}
		if hasPoint && params.RadiusKm != nil && res.DistanceKm != nil && *res.DistanceKm > *params.RadiusKm {
			continue
		}

		if res.Shop != nil {
			shop := *res.Shop
			shop.Password = "" // never serialize hashes
			res.Shop = &shop
		}
		results = append(results, res)
	}

	switch params.SortBy {
	case SortByPrice:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Price < results[j].Price
		})
	case SortByDistance:
		if hasPoint {
			sort.SliceStable(results, func(i, j int) bool {
				di, dj := results[i].DistanceKm, results[j].DistanceKm
				// Bags without a distance sort last.
				if di == nil {
					return false
				}
				if dj == nil {
					return true
				}
				return *di < *dj
			})
		}
	}

	return results, nil
}
