package dto

type ComparisonRequest struct {
	DocumentIds    []string `json:"document_ids" validate:"required,min=1,dive,uuid"`
	ComparisonType string   `json:"comparison_type" validate:"omitempty,oneof=coverage terms structure general"`
	FocusAreas     []string `json:"focus_areas"`
	FullPipeline   bool     `json:"full_pipeline"`
}

type ComparisonResponse struct {
	ComparisonId     string                 `json:"comparison_id"`
	DocumentIds      []string               `json:"document_ids"`
	Similarities     []string               `json:"similarities"`
	Differences      []string               `json:"differences"`
	Insights         string                 `json:"insights"`
	ComparisonMatrix map[string]interface{} `json:"comparison_matrix"`
	Confidence       float64                `json:"confidence"`
	ReasoningSteps   []string               `json:"reasoning_steps"`
	Metadata         map[string]interface{} `json:"metadata"`
}
