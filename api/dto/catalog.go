package dto

import "toolbox/catalog"

type CategoriesResponse struct {
	Categories []catalog.Category `json:"categories"`
}

type SearchResponse struct {
	Query    string         `json:"query"`
	Category string         `json:"category,omitempty"`
	Tools    []catalog.Tool `json:"tools"`
}

type ToolResponse struct {
	catalog.Tool
	Found         bool  `json:"found"`
	MaxUploadSize int64 `json:"max_upload_size,omitempty"`
}
