package catalog

import "context"

// Service defines catalog business logic.
type Service interface {
	// GetCatalog loads the whole catalog document.
	GetCatalog(ctx context.Context) (*Document, error)

	// ReplaceCatalog persists a caller-supplied document as-is. The caller
	// is responsible for having reconciled availability already.
	ReplaceCatalog(ctx context.Context, doc *Document) error

	// SetAvailability loads the document, reconciles the given toggles into
	// it and saves the result.
	SetAvailability(ctx context.Context, toggles []Toggle) (*Document, error)

	// UpdateShopInfo merges the shop status fields into shopInfo, leaving
	// every category untouched.
	UpdateShopInfo(ctx context.Context, update ShopInfoUpdate) error
}

// ShopInfoUpdate is the payload for saving the shop status from the admin
// page. DeliveryLocations is applied only when supplied.
type ShopInfoUpdate struct {
	IsOpen              bool               `json:"isOpen"`
	ClosedMessage       string             `json:"closedMessage"`
	IsDeliveryAvailable bool               `json:"isDeliveryAvailable"`
	DeliveryLocations   *DeliveryLocations `json:"deliveryLocations,omitempty"`
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetCatalog(ctx context.Context) (*Document, error) {
	return s.repo.Load(ctx)
}

func (s *service) ReplaceCatalog(ctx context.Context, doc *Document) error {
	return s.repo.Save(ctx, doc)
}

func (s *service) SetAvailability(ctx context.Context, toggles []Toggle) (*Document, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	updated := Reconcile(*doc, toggles)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) UpdateShopInfo(ctx context.Context, update ShopInfoUpdate) error {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	doc.ShopInfo.IsOpen = update.IsOpen
	doc.ShopInfo.ClosedMessage = update.ClosedMessage
	doc.ShopInfo.IsDeliveryAvailable = update.IsDeliveryAvailable
	if update.DeliveryLocations != nil {
		doc.ShopInfo.DeliveryLocations = *update.DeliveryLocations
	}
	doc.HasShopInfo = true
	return s.repo.Save(ctx, doc)
}
