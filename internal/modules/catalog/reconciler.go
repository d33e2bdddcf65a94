package catalog

// Toggle is one availability checkbox state submitted by the admin page:
// without FlavorID it targets the item itself, with FlavorID it targets one
// flavor of a special product.
type Toggle struct {
	Category  string `json:"category" validate:"required"`
	ItemID    string `json:"itemId" validate:"required"`
	FlavorID  string `json:"flavorId,omitempty"`
	Available bool   `json:"available"`
}

// Reconcile merges sparse availability toggles into the catalog document and
// returns the updated copy. The input document is never mutated.
//
// Toggles referencing an unknown category, item or flavor are silently
// skipped. Records without a toggle keep their current availability, and no
// entry is ever added, removed or reordered. Shop info is set aside before
// any toggle is applied and reattached afterwards, so toggle processing can
// never touch it.
func Reconcile(doc Document, toggles []Toggle) Document {
	out := doc.Clone()

	shopInfo := out.ShopInfo
	out.ShopInfo = ShopInfo{}

	for _, t := range toggles {
		cat := out.Category(t.Category)
		if cat == nil || cat.Kind == OpaqueSection {
			continue
		}
		item := cat.Item(t.ItemID)
		if item == nil {
			continue
		}
		if t.FlavorID == "" {
			item.Available = t.Available
			continue
		}
		if flavor := item.Flavor(t.FlavorID); flavor != nil {
			flavor.Available = t.Available
		}
	}

	out.ShopInfo = shopInfo
	return out
}
