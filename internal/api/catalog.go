package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

type CatalogHandler struct {
	scorer *scoring.Scorer
}

func NewCatalogHandler(s *scoring.Scorer) *CatalogHandler {
	return &CatalogHandler{scorer: s}
}

func (h *CatalogHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.scorer.Criteria())
}

type ProfileResponse struct {
	Context string `json:"context"`
	Weights []int  `json:"weights"`
	Sum     int    `json:"sum"`
}

func (h *CatalogHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles := h.scorer.Catalog().Profiles
	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = ProfileResponse{Context: p.Context, Weights: p.Weights, Sum: p.Sum()}
	}
	writeJSON(w, http.StatusOK, resp)
}
