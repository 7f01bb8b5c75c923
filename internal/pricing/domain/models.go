// Package domain contains the pricing engine's selection and line item types.
package domain

// ExchangeRate is the fixed MXN->USD conversion used for the secondary
// display price. It is a static approximation, not a live FX rate.
const ExchangeRate = 20

// Multiplier tier names. Each maps to a fixed factor; unknown names resolve
// to the neutral 1.0 factor rather than failing.
const (
	ComplexitySimple   = "simple"
	ComplexityModerado = "moderado"
	ComplexityComplejo = "complejo"
	ComplexityPremium  = "premium"

	UrgencyEstandar  = "estandar"
	UrgencyRapido    = "rapido"
	UrgencyUrgente   = "urgente"
	UrgencyInmediato = "inmediato"

	RightsPequena     = "pequena"
	RightsProfesional = "profesional"
	RightsEmpresarial = "empresarial"
	RightsCorporativo = "corporativo"

	ScopePersonal      = "personal"
	ScopeLocal         = "comercial-local"
	ScopeNacional      = "comercial-nacional"
	ScopeInternacional = "comercial-internacional"

	ExpertiseJunior = "junior"
	ExpertiseMid    = "mid"
	ExpertiseSenior = "senior"
	ExpertiseExpert = "expert"
)

// ErrorItemName labels the sentinel line item produced when pricing degrades.
const ErrorItemName = "Error en el servicio"

// Selection is one service choice to price. Immutable once priced; pricing
// returns a derived LineItem and never mutates the selection.
type Selection struct {
	Category   string `json:"category"`
	ServiceID  string `json:"service_id"`
	Complexity string `json:"complexity"`
	Urgency    string `json:"urgency"`
	Rights     string `json:"rights"`
	Scope      string `json:"scope"`
	Expertise  string `json:"expertise"`
	Quantity   int    `json:"quantity"`
}

// Breakdown records every factor applied so downstream consumers (aggregator,
// PDF) never recompute from raw inputs.
type Breakdown struct {
	BasePrice     float64 `json:"base_price"`
	Complexity    float64 `json:"complexity"`
	Urgency       float64 `json:"urgency"`
	Rights        float64 `json:"rights"`
	Scope         float64 `json:"scope"`
	Expertise     float64 `json:"expertise"`
	Quantity      int     `json:"quantity"`
	FinalPrice    int64   `json:"final_price"`
	FinalPriceUSD int64   `json:"final_price_usd"`
}

// LineItem is a priced selection.
type LineItem struct {
	Category      string    `json:"category"`
	ServiceID     string    `json:"service_id"`
	Name          string    `json:"name"`
	Complexity    string    `json:"complexity"`
	Urgency       string    `json:"urgency"`
	Rights        string    `json:"rights"`
	Scope         string    `json:"scope"`
	Expertise     string    `json:"expertise"`
	Quantity      int       `json:"quantity"`
	BasePrice     float64   `json:"base_price"`
	DeliveryDays  int       `json:"delivery_days"`
	FinalPrice    int64     `json:"final_price"`
	FinalPriceUSD int64     `json:"final_price_usd"`
	Breakdown     Breakdown `json:"breakdown"`
}
