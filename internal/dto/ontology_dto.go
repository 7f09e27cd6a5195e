package dto

type OntologyInfoResponse struct {
	Domain          string `json:"domain"`
	Namespace       string `json:"namespace"`
	ClassesCount    int    `json:"classes_count"`
	PropertiesCount int    `json:"properties_count"`
}
