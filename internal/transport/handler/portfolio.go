package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pep299/portfolio-pulse/internal/service"
	"github.com/pep299/portfolio-pulse/internal/transport/response"
)

// SavePortfolio handles POST /portfolio.
type SavePortfolio struct {
	portfolio *service.Portfolio
}

func NewSavePortfolio(portfolio *service.Portfolio) *SavePortfolio {
	return &SavePortfolio{portfolio: portfolio}
}

type savePortfolioRequest struct {
	Text string `json:"text"`
}

func (h *SavePortfolio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req savePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Text == "" {
		response.WriteBadRequest(w, "text is required")
		return
	}

	portfolio, err := h.portfolio.ParseAndSave(r.Context(), req.Text)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			response.WriteBadRequest(w, validationErr.Error())
			return
		}
		response.WriteInternalError(w, err.Error())
		return
	}

	response.WriteSuccess(w, "Portfolio saved", portfolio)
}

// GetPortfolio handles GET /portfolio.
type GetPortfolio struct {
	portfolio *service.Portfolio
}

func NewGetPortfolio(portfolio *service.Portfolio) *GetPortfolio {
	return &GetPortfolio{portfolio: portfolio}
}

func (h *GetPortfolio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolio.Summary(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoPortfolio) {
			response.WriteNotFound(w, "no portfolio saved")
			return
		}
		response.WriteInternalError(w, err.Error())
		return
	}

	response.WriteSuccess(w, "", summary)
}
