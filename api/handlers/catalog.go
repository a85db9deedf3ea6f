package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"toolbox/api/dto"
	"toolbox/catalog"
)

type CatalogHandler struct {
	catalog          *catalog.Catalog
	logger           *zap.Logger
	advisoryFileSize int64
}

func NewCatalogHandler(c *catalog.Catalog, advisoryFileSize int64, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, logger: logger, advisoryFileSize: advisoryFileSize}
}

// List returns every category, or the matching tools when q or category is
// given.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	if query == "" && category == "" {
		respondJSON(w, http.StatusOK, dto.CategoriesResponse{Categories: h.catalog.Categories()})
		return
	}

	respondJSON(w, http.StatusOK, dto.SearchResponse{
		Query:    query,
		Category: category,
		Tools:    h.catalog.Search(query, category),
	})
}

// Tool resolves a slug. Unknown slugs get a coming-soon placeholder, not a
// 404.
func (h *CatalogHandler) Tool(w http.ResponseWriter, r *http.Request) {
	tool, found := h.catalog.Lookup(r.PathValue("slug"))

	resp := dto.ToolResponse{Tool: tool, Found: found}
	if tool.CategorySlug == "image-tools" {
		resp.MaxUploadSize = h.advisoryFileSize
	}
	respondJSON(w, http.StatusOK, resp)
}
