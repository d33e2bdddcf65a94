package order

import (
	"encoding/json"
	"strconv"
	"time"
)

// timestampLayout matches JavaScript's Date.toISOString, which is what the
// original server wrote and what the stored history contains.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Amount is a monetary value that the menu page sends either as a JSON
// number or as a numeric string. The raw form is preserved on write so
// stored orders never change shape; Float64 coerces tolerantly for totals.
type Amount struct {
	raw json.RawMessage
}

// AmountOf builds an Amount from a plain number.
func AmountOf(v float64) Amount {
	return Amount{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// AmountOfString builds an Amount carrying a JSON string, the other legacy
// client form.
func AmountOfString(s string) Amount {
	raw, _ := json.Marshal(s)
	return Amount{raw: raw}
}

// IsSet reports whether the field was present at all.
func (a Amount) IsSet() bool { return a.raw != nil }

// Float64 returns the numeric value, or 0 when the field is missing or not
// numeric. Malformed financial data must never abort a report.
func (a Amount) Float64() float64 {
	if a.raw == nil {
		return 0
	}
	s := string(a.raw)
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(a.raw, &unquoted); err != nil {
			return 0
		}
		s = unquoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.raw = append(a.raw[:0], data...)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.raw == nil {
		return []byte("0"), nil
	}
	return a.raw, nil
}

// Order is one submitted order. Records are immutable once appended: the
// store is append-only and the server-assigned timestamp never changes.
// Unrecognized fields round-trip through Extra.
type Order struct {
	ID              string
	Cliente         string
	ValorTotal      Amount
	MetodoPagamento string
	TipoEntrega     string
	PedidoCompleto  []LineItem
	Timestamp       string // ISO-8601, assigned server-side at creation
	Extra           map[string]json.RawMessage
}

// Time parses the order timestamp. ok is false when the timestamp is
// missing or malformed; such orders are excluded from grouped reports.
func (o Order) Time() (t time.Time, ok bool) {
	if o.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, o.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LineItem is one sub-order inside PedidoCompleto. The choice lists are
// comma-joined strings; the menu page sends "Nenhuma"/"Nenhum" when the
// customer picked nothing from a list.
type LineItem struct {
	Produto         string
	Sabor           string
	Frutas          string
	Cremes          string
	Acompanhamentos string
	Coberturas      string
	Adicionais      string
	TotalPedido     Amount
	SubTotalItem    Amount
	Extra           map[string]json.RawMessage
}

// Subtotal returns the line subtotal, preferring totalPedido over
// subTotalItem, the two names different menu page versions used.
func (li LineItem) Subtotal() float64 {
	if li.TotalPedido.IsSet() {
		return li.TotalPedido.Float64()
	}
	return li.SubTotalItem.Float64()
}

// ── JSON encoding ─────────────────────────────────────────────────────────────
//
// Orders are stored exactly as the client sent them plus the server-assigned
// id and timestamp, so both codecs emit only fields that are actually set
// and keep everything unrecognized in the Extra bag.

func (o *Order) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*o = Order{}
	take := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return err
		}
		delete(fields, key)
		return nil
	}
	for key, dst := range map[string]any{
		"id":              &o.ID,
		"cliente":         &o.Cliente,
		"valorTotal":      &o.ValorTotal,
		"metodoPagamento": &o.MetodoPagamento,
		"tipoEntrega":     &o.TipoEntrega,
		"pedidoCompleto":  &o.PedidoCompleto,
		"timestamp":       &o.Timestamp,
	} {
		if err := take(key, dst); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		o.Extra = fields
	}
	return nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if o.ID != "" {
		m["id"] = o.ID
	}
	if o.Cliente != "" {
		m["cliente"] = o.Cliente
	}
	if o.ValorTotal.IsSet() {
		m["valorTotal"] = o.ValorTotal
	}
	if o.MetodoPagamento != "" {
		m["metodoPagamento"] = o.MetodoPagamento
	}
	if o.TipoEntrega != "" {
		m["tipoEntrega"] = o.TipoEntrega
	}
	if o.PedidoCompleto != nil {
		m["pedidoCompleto"] = o.PedidoCompleto
	}
	if o.Timestamp != "" {
		m["timestamp"] = o.Timestamp
	}
	for k, v := range o.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

func (li *LineItem) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*li = LineItem{}
	take := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return err
		}
		delete(fields, key)
		return nil
	}
	for key, dst := range map[string]any{
		"produto":         &li.Produto,
		"sabor":           &li.Sabor,
		"frutas":          &li.Frutas,
		"cremes":          &li.Cremes,
		"acompanhamentos": &li.Acompanhamentos,
		"coberturas":      &li.Coberturas,
		"adicionais":      &li.Adicionais,
		"totalPedido":     &li.TotalPedido,
		"subTotalItem":    &li.SubTotalItem,
	} {
		if err := take(key, dst); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		li.Extra = fields
	}
	return nil
}

func (li LineItem) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	setString := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	setString("produto", li.Produto)
	setString("sabor", li.Sabor)
	setString("frutas", li.Frutas)
	setString("cremes", li.Cremes)
	setString("acompanhamentos", li.Acompanhamentos)
	setString("coberturas", li.Coberturas)
	setString("adicionais", li.Adicionais)
	if li.TotalPedido.IsSet() {
		m["totalPedido"] = li.TotalPedido
	}
	if li.SubTotalItem.IsSet() {
		m["subTotalItem"] = li.SubTotalItem
	}
	for k, v := range li.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}
