package checkout

import (
	"fmt"

	"freshcart-backend/internal/geo"
	"freshcart-backend/internal/models"
)

// StoreView is the denormalized shape returned to the storefront when a
// fulfilling store has been resolved.
type StoreView struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Type      models.StoreType `json:"type"`
	City      string           `json:"city"`
	Province  string           `json:"province"`
	Address   string           `json:"address"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
}

func storeView(s models.Store) StoreView {
	return StoreView{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		City:      s.City.Name,
		Province:  s.City.Province.Name,
		Address:   s.Address,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}

// NearestStore picks the store that should fulfill an order. Without a
// resolvable address the central store is used. With one, the store with
// the smallest haversine distance wins; ties go to the lowest store id
// since stores are iterated in ascending id order.
func (s *Service) NearestStore(userID uint, addressID *uint) (*StoreView, error) {
	var address *models.UserAddress
	if addressID != nil && *addressID != 0 {
		var err error
		address, err = s.repo.UserAddress(userID, *addressID)
		if err != nil {
			return nil, err
		}
	}

	if address == nil {
		central, err := s.repo.CentralStore()
		if err != nil {
			return nil, err
		}
		if central == nil {
			return nil, ErrNoCentralStore
		}
		v := storeView(*central)
		return &v, nil
	}

	stores, err := s.repo.Stores()
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, ErrNoCentralStore
	}

	best := stores[0]
	bestDist := geo.Distance(address.Latitude, address.Longitude, best.Latitude, best.Longitude)
	for _, store := range stores[1:] {
		d := geo.Distance(address.Latitude, address.Longitude, store.Latitude, store.Longitude)
		if d < bestDist {
			best = store
			bestDist = d
		}
	}

	v := storeView(best)
	return &v, nil
}

// donorStore finds the nearest store in the origin's city holding at
// least the needed quantity of the product, or nil when none qualifies.
// There is deliberately no cross-city fallback: transfers beyond the
// city are a manual back-office decision.
func donorStore(repo Repository, origin *models.Store, productID uint, needed int) (*models.Store, error) {
	if origin == nil || origin.ID == 0 || productID == 0 || needed <= 0 {
		return nil, fmt.Errorf("donor store lookup needs a valid store, product and positive quantity")
	}

	candidates, err := repo.StoresWithStock(origin.CityID, origin.ID, productID, needed)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := candidates[0]
	bestDist := geo.Distance(origin.Latitude, origin.Longitude, best.Latitude, best.Longitude)
	for _, candidate := range candidates[1:] {
		d := geo.Distance(origin.Latitude, origin.Longitude, candidate.Latitude, candidate.Longitude)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}

	return &best, nil
}
