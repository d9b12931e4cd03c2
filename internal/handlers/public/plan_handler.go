package public

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/outpost-tools/rostering-service/internal/auth"
	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/outpost-tools/rostering-service/internal/service"
	"go.uber.org/zap"
)

// PlanHandler serves the rostering endpoints.
type PlanHandler struct {
	planService *service.PlanService
	logger      *zap.Logger
	validator   *validator.Validate
}

func NewPlanHandler(planService *service.PlanService, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		logger:      logger,
		validator:   validator.New(),
	}
}

// GeneratePlan handles POST /rostering/plans
func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userContext, err := auth.GetUser(ctx)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnauthorized, models.ErrorCodeMissingUserID, "User ID not found in context", nil)
		return
	}

	var req models.GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON body", nil)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation,
			"Request validation failed", map[string]interface{}{
				"validation_error": err.Error(),
			})
		return
	}

	if req.TradingStations == 0 && req.ManufacturingStations == 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation,
			"At least one trading or manufacturing station is required", nil)
		return
	}

	h.logger.Info("Generating plan for user",
		zap.String("user_id", userContext.UserID),
		zap.Int("trading_stations", req.TradingStations),
		zap.Int("manufacturing_stations", req.ManufacturingStations),
		zap.String("request_id", getRequestID(r)),
	)

	plan, err := h.planService.GeneratePlan(ctx, req)
	if err != nil {
		h.logger.Error("Failed to generate plan",
			zap.Error(err),
			zap.String("user_id", userContext.UserID),
			zap.String("request_id", getRequestID(r)),
		)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError,
			"Failed to generate plan", nil)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, plan)
}

// GetOperators handles GET /rostering/operators
func (h *PlanHandler) GetOperators(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownedOnly := r.URL.Query().Get("owned") == "true"

	operators, err := h.planService.ListOperators(ctx, ownedOnly)
	if err != nil {
		h.logger.Error("Failed to list operators",
			zap.Error(err),
			zap.String("request_id", getRequestID(r)),
		)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError,
			"Failed to list operators", nil)
		return
	}

	response := models.OperatorsResponse{
		Operators: operators,
		Total:     len(operators),
		OwnedOnly: ownedOnly,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// GetRules handles GET /rostering/rules
func (h *PlanHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules := h.planService.ListRules()

	response := models.RulesResponse{
		Rules: rules,
		Total: len(rules),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *PlanHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (h *PlanHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, details map[string]interface{}) {
	errorResponse := models.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Details: details,
	}

	h.writeJSONResponse(w, statusCode, errorResponse)
}

func getRequestID(r *http.Request) string {
	if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
		return requestID
	}
	return "unknown"
}
