package dto

import "toolbox/textstats"

type WordCountRequest struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

type WordCountResponse struct {
	Text  string          `json:"text"`
	Stats textstats.Stats `json:"stats"`
}
