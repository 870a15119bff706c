package postgres

import (
	"time"

	permitDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/permit"
	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/permit"
	"gorm.io/gorm"
)

// PermitRepository implements the permit.Repository interface using GORM
type PermitRepository struct {
	db *gorm.DB
}

func NewPermitRepository(db *gorm.DB) permit.Repository {
	return &PermitRepository{db: db}
}

func (r *PermitRepository) Create(p *permit.Permit) error {
	dm := permit.ToDataModel(p)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	*p = *permit.FromDataModel(dm)
	return nil
}

func (r *PermitRepository) GetByID(id int64) (*permit.Permit, error) {
	var dm permitDatamodel.VehiclePermit
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrPermitNotFound
		}
		return nil, err
	}
	return permit.FromDataModel(&dm), nil
}

// List returns permits newest first, filtered by status and submission date
// range. ToDate is inclusive at day granularity.
func (r *PermitRepository) List(q permit.ListQuery) ([]*permit.Permit, error) {
	query := r.db.Model(&permitDatamodel.VehiclePermit{})

	if q.Status != "" && q.Status != "all" {
		query = query.Where("status = ?", q.Status)
	}
	if q.FromDate != nil {
		query = query.Where("created_at >= ?", *q.FromDate)
	}
	if q.ToDate != nil {
		query = query.Where("created_at < ?", q.ToDate.AddDate(0, 0, 1))
	}

	var dms []*permitDatamodel.VehiclePermit
	err := query.Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return permit.FromDataModelSlice(dms), nil
}

func (r *PermitRepository) CountByStatus() (*permit.Stats, error) {
	type statusCount struct {
		Status string `gorm:"column:status"`
		Count  int64  `gorm:"column:count"`
	}

	var counts []statusCount
	err := r.db.Model(&permitDatamodel.VehiclePermit{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	stats := &permit.Stats{}
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case permit.StatusPending:
			stats.Pending = c.Count
		case permit.StatusApproved:
			stats.Approved = c.Count
		case permit.StatusRejected:
			stats.Rejected = c.Count
		}
	}
	return stats, nil
}

// DecideIfPending is the compare-and-swap on status: the update only lands
// when the row is still pending, and the affected-row count tells the
// service whether this caller won the transition.
func (r *PermitRepository) DecideIfPending(id int64, status string, comments *string, decidedBy int64, decidedAt time.Time) (int64, error) {
	result := r.db.Model(&permitDatamodel.VehiclePermit{}).
		Where("id = ? AND status = ?", id, permit.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"hr_comments": comments,
			"approved_at": decidedAt,
			"approved_by": decidedBy,
			"updated_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}

// ListForExport joins permits with employee identity and decider name for
// the CSV dump, oldest submission first.
func (r *PermitRepository) ListForExport(q permit.ExportQuery) ([]*permit.ExportRecord, error) {
	query := r.db.Table("vehicle_permits AS p").
		Select(`p.id AS request_id,
			e.employee_id AS employee_code,
			e.name AS employee_name,
			e.department AS department,
			e.grade AS grade,
			p.vehicle_type AS vehicle_type,
			p.license_plate AS license_plate,
			p.usage_start AS usage_start,
			p.usage_end AS usage_end,
			p.purpose AS purpose,
			p.status AS status,
			p.hr_comments AS hr_comments,
			u.name AS approver_name,
			p.approved_at AS approved_at,
			p.created_at AS submitted_at`).
		Joins("JOIN employees e ON e.id = p.employee_id").
		Joins("LEFT JOIN users u ON u.id = p.approved_by")

	if q.FromDate != nil {
		query = query.Where("p.created_at >= ?", *q.FromDate)
	}
	if q.ToDate != nil {
		query = query.Where("p.created_at < ?", q.ToDate.AddDate(0, 0, 1))
	}

	var records []*permit.ExportRecord
	if err := query.Order("p.created_at ASC").Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
