package availabilityRepo

import "meetbook/models"

// Repository defines persistence for availability templates. Update and
// Delete are owner-scoped: they match on both template id and host id so a
// host can never touch another host's template.
type Repository interface {
	Create(tpl *models.AvailabilityTemplate) error
	GetByID(id string) (*models.AvailabilityTemplate, error)
	GetByHost(hostID string) ([]models.AvailabilityTemplate, error)
	ListAll() ([]models.AvailabilityTemplate, error)
	Update(id, hostID string, tpl *models.AvailabilityTemplate) error
	Delete(id, hostID string) error
	EnsureIndexes() error
}
