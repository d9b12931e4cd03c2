package models

// ProductQuantity is one entry of an ordered product-requirement list.
// Arrays are used instead of maps so that declaration order survives JSON
// round-trips; the scheduler assigns products in this order.
type ProductQuantity struct {
	Product string `json:"product" validate:"required"`
	Count   int    `json:"count" validate:"min=0"`
}

// ProductRequirements carries the requested product mix per countable
// category.
type ProductRequirements struct {
	Trading       []ProductQuantity `json:"trading,omitempty" validate:"dive"`
	Manufacturing []ProductQuantity `json:"manufacturing,omitempty" validate:"dive"`
}

// BoostRequest enables the quota-boost mechanic for a plan run.
type BoostRequest struct {
	Enabled bool `json:"enabled"`
}

// GeneratePlanRequest is the body of POST /rostering/plans.
type GeneratePlanRequest struct {
	TradingStations       int                 `json:"trading_stations" validate:"min=0,max=8"`
	ManufacturingStations int                 `json:"manufacturing_stations" validate:"min=0,max=8"`
	Products              ProductRequirements `json:"products"`
	Boost                 BoostRequest        `json:"boost"`
}

// RuleSummary is one row of the compiled rule table listing.
type RuleSummary struct {
	Description string            `json:"description"`
	System      string            `json:"system"`
	Category    WorkplaceCategory `json:"category"`
	Operators   []string          `json:"operators"`
	Synergy     float64           `json:"synergy"`
	Priority    int               `json:"priority"`
	ApplyEach   bool              `json:"apply_each"`
	Generic     bool              `json:"generic"`
}

// OperatorsResponse is the body of GET /rostering/operators.
type OperatorsResponse struct {
	Operators []Operator `json:"operators"`
	Total     int        `json:"total"`
	OwnedOnly bool       `json:"owned_only"`
}

// RulesResponse is the body of GET /rostering/rules.
type RulesResponse struct {
	Rules []RuleSummary `json:"rules"`
	Total int           `json:"total"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used in ErrorResponse.Error.
const (
	ErrorCodeValidation    = "validation_error"
	ErrorCodeMissingToken  = "missing_token"
	ErrorCodeInvalidToken  = "invalid_token_format"
	ErrorCodeMissingUserID = "missing_user_id"
	ErrorCodeNotFound      = "not_found"
	ErrorCodeBadRequest    = "bad_request"
	ErrorCodeInternalError = "internal_error"
)
