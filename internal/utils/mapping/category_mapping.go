package mapping

import (
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/finoffice/finoffice_backend/internal/models"
)

// ToDomainCategory converts a DB row to the domain category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Widget:      domain.CategoryWidget(m.Widget),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCategory converts a domain category to its DB row form.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Widget:      string(d.Widget),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
