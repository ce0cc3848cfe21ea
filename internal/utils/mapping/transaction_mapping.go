package mapping

import (
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/finoffice/finoffice_backend/internal/models"
)

// ToModelTransaction converts a domain transaction to its DB row form.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		OwnerID:        d.OwnerID,
		Type:           models.TransactionType(d.Type),
		CategoryID:     d.CategoryID,
		ProjectID:      d.ProjectID,
		Description:    d.Description,
		AccountFromID:  d.AccountFromID,
		AccountToID:    d.AccountToID,
		ContractorKind: string(d.Contractor.Kind),
		ContractorID:   d.Contractor.ID,
		Amount:         d.Amount,
		ConversionRate: d.ConversionRate,
		Date:           d.Date,
		Planned:        d.Planned,
		Status:         models.TransactionStatus(d.Status),
		Repeat:         string(d.Repeat),
		RepeatEvery:    d.RepeatEvery,
		RepeatCode:     d.RepeatCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a DB row to the domain transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		Type:          domain.TransactionType(m.Type),
		CategoryID:    m.CategoryID,
		ProjectID:     m.ProjectID,
		Description:   m.Description,
		AccountFromID: m.AccountFromID,
		AccountToID:   m.AccountToID,
		Contractor: domain.EntityRef{
			Kind: domain.EntityKind(m.ContractorKind),
			ID:   m.ContractorID,
		},
		Amount:         m.Amount,
		ConversionRate: m.ConversionRate,
		Date:           m.Date,
		Planned:        m.Planned,
		Status:         domain.TransactionStatus(m.Status),
		Repeat:         domain.RepeatUnit(m.Repeat),
		RepeatEvery:    m.RepeatEvery,
		RepeatCode:     m.RepeatCode,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
