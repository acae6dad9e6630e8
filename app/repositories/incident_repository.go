package repositories

import (
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// IncidentRepository persists payment reconciliation incidents.
type IncidentRepository struct {
	q *orm.Query
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{q: orm.New(db)}
}

// Record stores one incident. The unique charge-id index makes recording
// idempotent across retries.
func (r *IncidentRepository) Record(incident *models.PaymentIncident) error {
	return translate(r.q.Create(incident), "payment incident")
}

// Unresolved lists incidents still awaiting manual reconciliation.
func (r *IncidentRepository) Unresolved() ([]models.PaymentIncident, error) {
	var incidents []models.PaymentIncident
	err := r.q.Model(&models.PaymentIncident{}).
		Where("resolved_at IS NULL").
		Order("created_at ASC").
		Get(&incidents)
	return incidents, translate(err, "payment incidents")
}

// Resolve marks an incident handled.
func (r *IncidentRepository) Resolve(id uint, at time.Time) error {
	err := r.q.Gorm().Model(&models.PaymentIncident{}).
		Where("id = ?", id).
		Update("resolved_at", at).Error
	return translate(err, "payment incident")
}
