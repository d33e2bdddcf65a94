package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SpecialCategory is the reserved category name whose items carry their own
// flavor lists (açaí barrels and the like).
const SpecialCategory = "produtos_especiais"

// CategoryKind discriminates the sections of the catalog document.
type CategoryKind int

const (
	// RegularCategory is a plain ordered list of items.
	RegularCategory CategoryKind = iota
	// SpecialProductCategory items each own a list of flavor variants.
	SpecialProductCategory
	// OpaqueSection is a top-level value that is not an item list (size
	// tables etc.); it round-trips byte-identically and is never toggled.
	OpaqueSection
)

// Document is the whole menu/shop-status document stored in items.json.
// It is always loaded, mutated and written as a unit.
type Document struct {
	ShopInfo    ShopInfo
	HasShopInfo bool
	Categories  []Category // top-level key order of the stored file
}

// Category is one top-level section of the catalog.
type Category struct {
	Name  string
	Kind  CategoryKind
	Items []Item
	Raw   json.RawMessage // set only for OpaqueSection
}

// Item is a menu entry. Unrecognized fields (prices, descriptions, image
// paths) are carried in Extra and survive every load/save cycle untouched.
type Item struct {
	ID        string
	Name      string
	Available bool
	Flavors   []Flavor // only for special products
	Extra     map[string]json.RawMessage
}

// Flavor is an independently toggle-able variant of a special product.
type Flavor struct {
	ID        string
	Name      string
	Available bool
	Extra     map[string]json.RawMessage
}

// ShopInfo is the shop status block. It is never touched by availability
// reconciliation.
type ShopInfo struct {
	IsOpen              bool
	IsDeliveryAvailable bool
	ClosedMessage       string
	DeliveryLocations   DeliveryLocations
	Extra               map[string]json.RawMessage
}

// DeliveryLocations flags which areas delivery currently covers.
type DeliveryLocations struct {
	Bairro bool `json:"bairro"`
	Centro bool `json:"centro"`
}

// Category returns the named category, or nil.
func (d *Document) Category(name string) *Category {
	for i := range d.Categories {
		if d.Categories[i].Name == name {
			return &d.Categories[i]
		}
	}
	return nil
}

// Item returns the item with the given id, or nil.
func (c *Category) Item(id string) *Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Flavor returns the flavor with the given id, or nil.
func (it *Item) Flavor(id string) *Flavor {
	for i := range it.Flavors {
		if it.Flavors[i].ID == id {
			return &it.Flavors[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.ShopInfo = d.ShopInfo.clone()
	out.Categories = make([]Category, len(d.Categories))
	for i, c := range d.Categories {
		out.Categories[i] = c.clone()
	}
	return out
}

func (c Category) clone() Category {
	out := c
	out.Raw = append(json.RawMessage(nil), c.Raw...)
	if c.Items != nil {
		out.Items = make([]Item, len(c.Items))
		for i, it := range c.Items {
			out.Items[i] = it.clone()
		}
	}
	return out
}

func (it Item) clone() Item {
	out := it
	out.Extra = cloneExtra(it.Extra)
	if it.Flavors != nil {
		out.Flavors = make([]Flavor, len(it.Flavors))
		for i, f := range it.Flavors {
			out.Flavors[i] = f
			out.Flavors[i].Extra = cloneExtra(f.Extra)
		}
	}
	return out
}

func (s ShopInfo) clone() ShopInfo {
	out := s
	out.Extra = cloneExtra(s.Extra)
	return out
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// ── JSON encoding ─────────────────────────────────────────────────────────────
//
// The stored document uses dynamic top-level keys (one per category), so the
// codec walks the object token by token to keep category order, and splits
// each record into known fields plus the opaque Extra bag.

// UnmarshalJSON decodes the catalog document, classifying each top-level key
// as shop info, a special product category, a regular category, or an opaque
// section.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog document: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("catalog document: section %q: %w", key, err)
		}

		if key == "shopInfo" {
			if err := json.Unmarshal(raw, &d.ShopInfo); err != nil {
				return fmt.Errorf("catalog document: shopInfo: %w", err)
			}
			d.HasShopInfo = true
			continue
		}

		d.Categories = append(d.Categories, decodeCategory(key, raw))
	}
	return nil
}

func decodeCategory(name string, raw json.RawMessage) Category {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return Category{Name: name, Kind: OpaqueSection, Raw: raw}
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return Category{Name: name, Kind: OpaqueSection, Raw: raw}
	}
	kind := RegularCategory
	if name == SpecialCategory {
		kind = SpecialProductCategory
	}
	if items == nil {
		items = []Item{}
	}
	return Category{Name: name, Kind: kind, Items: items}
}

// MarshalJSON writes shopInfo first, then categories in stored order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeKey := func(key string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		return nil
	}

	if d.HasShopInfo {
		if err := writeKey("shopInfo"); err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.ShopInfo)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}

	for _, c := range d.Categories {
		if err := writeKey(c.Name); err != nil {
			return nil, err
		}
		if c.Kind == OpaqueSection {
			buf.Write(c.Raw)
			continue
		}
		items := c.Items
		if items == nil {
			items = []Item{}
		}
		v, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps unrecognized item fields in Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*it = Item{}
	if err := takeField(fields, "id", &it.ID); err != nil {
		return err
	}
	if err := takeField(fields, "name", &it.Name); err != nil {
		return err
	}
	if err := takeField(fields, "available", &it.Available); err != nil {
		return err
	}
	if raw, ok := fields["flavors"]; ok {
		if err := json.Unmarshal(raw, &it.Flavors); err != nil {
			return fmt.Errorf("item %s: flavors: %w", it.ID, err)
		}
		delete(fields, "flavors")
	}
	if len(fields) > 0 {
		it.Extra = fields
	}
	return nil
}

// MarshalJSON merges known fields and the Extra bag back into one object.
func (it Item) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"id":        it.ID,
		"name":      it.Name,
		"available": it.Available,
	}
	if it.Flavors != nil {
		m["flavors"] = it.Flavors
	}
	for k, v := range it.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

func (f *Flavor) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*f = Flavor{}
	if err := takeField(fields, "id", &f.ID); err != nil {
		return err
	}
	if err := takeField(fields, "name", &f.Name); err != nil {
		return err
	}
	if err := takeField(fields, "available", &f.Available); err != nil {
		return err
	}
	if len(fields) > 0 {
		f.Extra = fields
	}
	return nil
}

func (f Flavor) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"id":        f.ID,
		"name":      f.Name,
		"available": f.Available,
	}
	for k, v := range f.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

func (s *ShopInfo) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = ShopInfo{}
	if err := takeField(fields, "isOpen", &s.IsOpen); err != nil {
		return err
	}
	if err := takeField(fields, "isDeliveryAvailable", &s.IsDeliveryAvailable); err != nil {
		return err
	}
	if err := takeField(fields, "closedMessage", &s.ClosedMessage); err != nil {
		return err
	}
	if err := takeField(fields, "deliveryLocations", &s.DeliveryLocations); err != nil {
		return err
	}
	if len(fields) > 0 {
		s.Extra = fields
	}
	return nil
}

func (s ShopInfo) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"isOpen":              s.IsOpen,
		"isDeliveryAvailable": s.IsDeliveryAvailable,
		"closedMessage":       s.ClosedMessage,
		"deliveryLocations":   s.DeliveryLocations,
	}
	for k, v := range s.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// takeField decodes fields[key] into dst and removes it from the map, so
// whatever remains afterwards is the Extra bag.
func takeField(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	delete(fields, key)
	return nil
}
