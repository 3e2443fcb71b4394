package repository

import (
	"context"
	"encoding/json"
	"time"

	"podstudio/internal/domain"

	"gorm.io/gorm"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

type studioModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	OwnerID      int64     `gorm:"column:owner_id;index"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description;type:text"`
	Equipment    string    `gorm:"column:equipment;type:text"`
	Images       string    `gorm:"column:images;type:text"`
	Address      string    `gorm:"column:address"`
	City         string    `gorm:"column:city;index"`
	State        string    `gorm:"column:state"`
	PostalCode   string    `gorm:"column:postal_code"`
	OpenHour     int       `gorm:"column:open_hour"`
	CloseHour    int       `gorm:"column:close_hour"`
	Approved     bool      `gorm:"column:approved;index"`
	Rating       float64   `gorm:"column:rating"`
	TotalReviews int       `gorm:"column:total_reviews"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (studioModel) TableName() string { return "studios" }

type packageModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	StudioID    int64   `gorm:"column:studio_id;uniqueIndex:idx_package_studio_key"`
	Key         string  `gorm:"column:key;uniqueIndex:idx_package_studio_key"`
	Name        string  `gorm:"column:name"`
	Price       float64 `gorm:"column:price"`
	Description string  `gorm:"column:description;type:text"`
}

func (packageModel) TableName() string { return "studio_packages" }

type addonModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	StudioID    int64   `gorm:"column:studio_id;uniqueIndex:idx_addon_studio_key"`
	Key         string  `gorm:"column:key;uniqueIndex:idx_addon_studio_key"`
	Name        string  `gorm:"column:name"`
	Price       float64 `gorm:"column:price"`
	Description string  `gorm:"column:description;type:text"`
	MaxQuantity int     `gorm:"column:max_quantity"`
}

func (addonModel) TableName() string { return "studio_addons" }

func toDomainStudio(m studioModel, pkgs []packageModel, addons []addonModel) *domain.Studio {
	s := &domain.Studio{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		Description:  m.Description,
		Address:      m.Address,
		City:         m.City,
		State:        m.State,
		PostalCode:   m.PostalCode,
		OpenHour:     m.OpenHour,
		CloseHour:    m.CloseHour,
		Approved:     m.Approved,
		Rating:       m.Rating,
		TotalReviews: m.TotalReviews,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Equipment != "" {
		_ = json.Unmarshal([]byte(m.Equipment), &s.Equipment)
	}
	if m.Images != "" {
		_ = json.Unmarshal([]byte(m.Images), &s.Images)
	}
	for _, p := range pkgs {
		s.Packages = append(s.Packages, domain.Package{
			ID:          p.ID,
			StudioID:    p.StudioID,
			Key:         p.Key,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
		})
	}
	for _, a := range addons {
		s.Addons = append(s.Addons, domain.Addon{
			ID:          a.ID,
			StudioID:    a.StudioID,
			Key:         a.Key,
			Name:        a.Name,
			Price:       a.Price,
			Description: a.Description,
			MaxQuantity: a.MaxQuantity,
		})
	}
	return s
}

func toStudioModel(s *domain.Studio) studioModel {
	equipment, _ := json.Marshal(s.Equipment)
	images, _ := json.Marshal(s.Images)
	return studioModel{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Name:         s.Name,
		Description:  s.Description,
		Equipment:    string(equipment),
		Images:       string(images),
		Address:      s.Address,
		City:         s.City,
		State:        s.State,
		PostalCode:   s.PostalCode,
		OpenHour:     s.OpenHour,
		CloseHour:    s.CloseHour,
		Approved:     s.Approved,
		Rating:       s.Rating,
		TotalReviews: s.TotalReviews,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// Create inserts the studio together with its packages and addons.
func (r *StudioRepository) Create(ctx context.Context, s *domain.Studio) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toStudioModel(s)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		s.ID = m.ID
		s.CreatedAt = m.CreatedAt
		s.UpdatedAt = m.UpdatedAt
		if err := replacePackages(tx, s.ID, s.Packages); err != nil {
			return err
		}
		return replaceAddons(tx, s.ID, s.Addons)
	})
}

// Update overwrites studio attributes and replaces the price list.
func (r *StudioRepository) Update(ctx context.Context, s *domain.Studio) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toStudioModel(s)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if err := replacePackages(tx, s.ID, s.Packages); err != nil {
			return err
		}
		return replaceAddons(tx, s.ID, s.Addons)
	})
}

func replacePackages(tx *gorm.DB, studioID int64, pkgs []domain.Package) error {
	if err := tx.Where("studio_id = ?", studioID).Delete(&packageModel{}).Error; err != nil {
		return err
	}
	for _, p := range pkgs {
		m := packageModel{
			StudioID:    studioID,
			Key:         p.Key,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceAddons(tx *gorm.DB, studioID int64, addons []domain.Addon) error {
	if err := tx.Where("studio_id = ?", studioID).Delete(&addonModel{}).Error; err != nil {
		return err
	}
	for _, a := range addons {
		m := addonModel{
			StudioID:    studioID,
			Key:         a.Key,
			Name:        a.Name,
			Price:       a.Price,
			Description: a.Description,
			MaxQuantity: a.MaxQuantity,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID loads the studio with its packages and addons.
func (r *StudioRepository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	var m studioModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	pkgs, addons, err := r.loadPriceList(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainStudio(m, pkgs, addons), nil
}

func (r *StudioRepository) loadPriceList(ctx context.Context, studioID int64) ([]packageModel, []addonModel, error) {
	var pkgs []packageModel
	if err := r.db.WithContext(ctx).Where("studio_id = ?", studioID).Order("id").Find(&pkgs).Error; err != nil {
		return nil, nil, err
	}
	var addons []addonModel
	if err := r.db.WithContext(ctx).Where("studio_id = ?", studioID).Order("id").Find(&addons).Error; err != nil {
		return nil, nil, err
	}
	return pkgs, addons, nil
}

type StudioFilters struct {
	City   string
	Limit  int
	Offset int
}

// GetApproved lists approved studios for the public catalog.
func (r *StudioRepository) GetApproved(ctx context.Context, f StudioFilters) ([]domain.Studio, int64, error) {
	q := r.db.WithContext(ctx).Model(&studioModel{}).Where("approved = ?", true)
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []studioModel
	if err := q.Order("id").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Studio, 0, len(rows))
	for _, m := range rows {
		pkgs, addons, err := r.loadPriceList(ctx, m.ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *toDomainStudio(m, pkgs, addons))
	}
	return out, total, nil
}

// GetPending lists studios awaiting moderation.
func (r *StudioRepository) GetPending(ctx context.Context) ([]domain.Studio, error) {
	var rows []studioModel
	if err := r.db.WithContext(ctx).Where("approved = ?", false).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Studio, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStudio(m, nil, nil))
	}
	return out, nil
}

// GetByOwner lists all studios of one owner, approved or not.
func (r *StudioRepository) GetByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error) {
	var rows []studioModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Studio, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainStudio(m, nil, nil))
	}
	return out, nil
}

// SetApproved flips the moderation flag.
func (r *StudioRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	tx := r.db.WithContext(ctx).Model(&studioModel{}).Where("id = ?", id).Update("approved", approved)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRating overwrites the cached review aggregate.
func (r *StudioRepository) UpdateRating(ctx context.Context, id int64, rating float64, total int) error {
	return r.db.WithContext(ctx).Model(&studioModel{}).Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "total_reviews": total}).Error
}

// Delete removes the studio, its price list, and all its availability.
func (r *StudioRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("studio_id = ?", id).Delete(&packageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("studio_id = ?", id).Delete(&addonModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("availability_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&availabilityModel{}).Select("id").Where("studio_id = ?", id),
		).Delete(&slotModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("studio_id = ?", id).Delete(&availabilityModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&studioModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
