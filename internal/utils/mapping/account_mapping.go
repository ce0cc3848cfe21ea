package mapping

import (
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/finoffice/finoffice_backend/internal/models"
)

// ToModelAccount converts a domain account to its DB row form.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:    d.AccountID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		Total:        d.Total,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.Owner != nil {
		m.OwnerKind = string(d.Owner.Kind)
		m.OwnerID = d.Owner.ID
	}
	return m
}

// ToDomainAccount converts a DB row to the domain account.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:    m.AccountID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Total:        m.Total,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.OwnerKind != "" {
		d.Owner = &domain.EntityRef{
			Kind: domain.EntityKind(m.OwnerKind),
			ID:   m.OwnerID,
		}
	}
	return d
}
