package service

import (
	"sort"

	"doc-intel-be/internal/dto"
	"doc-intel-be/pkg/ontology"
)

type IOntologyService interface {
	List() []*dto.OntologyInfoResponse
}

type ontologyService struct {
	manager *ontology.Manager
}

func NewOntologyService(manager *ontology.Manager) IOntologyService {
	return &ontologyService{manager: manager}
}

func (os *ontologyService) List() []*dto.OntologyInfoResponse {
	infos := os.manager.List()

	domains := make([]string, 0, len(infos))
	for domain := range infos {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	result := make([]*dto.OntologyInfoResponse, 0, len(domains))
	for _, domain := range domains {
		info := infos[domain]
		result = append(result, &dto.OntologyInfoResponse{
			Domain:          info.Domain,
			Namespace:       info.Namespace,
			ClassesCount:    info.ClassesCount,
			PropertiesCount: info.PropertiesCount,
		})
	}
	return result
}
