package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/contractgen/internal/model"
)

type profileRow struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileName   string    `gorm:"column:profile_name"`
	OrgType       string    `gorm:"column:org_type"`
	FullName      string    `gorm:"column:full_name"`
	ShortName     string    `gorm:"column:short_name"`
	LegalAddress  string    `gorm:"column:legal_address"`
	PostalAddress string    `gorm:"column:postal_address"`
	INN           string    `gorm:"column:inn"`
	OGRN          string    `gorm:"column:ogrn"`
	BankAccount   string    `gorm:"column:bank_account"`
	BankName      string    `gorm:"column:bank_name"`
	BIK           string    `gorm:"column:bik"`
	CorrAccount   string    `gorm:"column:corr_account"`
	Email         string    `gorm:"column:email"`
	Phone         string    `gorm:"column:phone"`
	IsDefault     bool      `gorm:"column:is_default"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (profileRow) TableName() string { return "executor_profiles" }

var editableColumns = []string{
	"profile_name", "org_type", "full_name", "short_name", "legal_address",
	"postal_address", "inn", "ogrn", "bank_account", "bank_name", "bik",
	"corr_account", "email", "phone", "updated_at",
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) List(ctx context.Context) ([]model.ExecutorProfile, error) {
	var rows []profileRow
	if err := r.db.WithContext(ctx).
		Order("is_default DESC").
		Order("profile_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	profiles := make([]model.ExecutorProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toModel())
	}
	return profiles, nil
}

func (r *ProfileRepository) Get(ctx context.Context, id uuid.UUID) (*model.ExecutorProfile, error) {
	var row profileRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	profile := row.toModel()
	return &profile, nil
}

func (r *ProfileRepository) GetDefault(ctx context.Context) (*model.ExecutorProfile, error) {
	var row profileRow
	if err := r.db.WithContext(ctx).Where("is_default").Take(&row).Error; err != nil {
		return nil, err
	}
	profile := row.toModel()
	return &profile, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&profileRow{}).Count(&count).Error
	return count, err
}

// Create создаёт профиль; первый профиль становится основным
func (r *ProfileRepository) Create(ctx context.Context, profile *model.ExecutorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&profileRow{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			profile.IsDefault = true
		}
		if profile.IsDefault {
			if err := clearDefault(tx); err != nil {
				return err
			}
		}

		row := profileRowFromModel(*profile)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		*profile = row.toModel()
		return nil
	})
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.ExecutorProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	row := profileRowFromModel(*profile)
	res := r.db.WithContext(ctx).
		Model(&profileRow{}).
		Where("id = ?", profile.ID).
		Select(editableColumns).
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProfileRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefault(tx); err != nil {
			return err
		}
		res := tx.Model(&profileRow{}).
			Where("id = ?", id).
			Updates(map[string]any{"is_default": true, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&profileRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertByName создаёт или обновляет профиль по имени, флаг основного не трогает
func (r *ProfileRepository) UpsertByName(ctx context.Context, profile *model.ExecutorProfile) error {
	now := time.Now().UTC()
	profile.CreatedAt, profile.UpdatedAt = now, now
	profile.IsDefault = false
	row := profileRowFromModel(*profile)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_name"}},
		DoUpdates: clause.AssignmentColumns(editableColumns),
	}).Create(&row).Error; err != nil {
		return err
	}
	profile.ID = row.ID
	return nil
}

func clearDefault(tx *gorm.DB) error {
	return tx.Model(&profileRow{}).
		Where("is_default").
		Updates(map[string]any{"is_default": false, "updated_at": time.Now().UTC()}).Error
}

func profileRowFromModel(p model.ExecutorProfile) profileRow {
	return profileRow{
		ID:            p.ID,
		ProfileName:   p.ProfileName,
		OrgType:       string(p.OrgType),
		FullName:      p.FullName,
		ShortName:     p.ShortName,
		LegalAddress:  p.LegalAddress,
		PostalAddress: p.PostalAddress,
		INN:           p.INN,
		OGRN:          p.OGRN,
		BankAccount:   p.BankAccount,
		BankName:      p.BankName,
		BIK:           p.BIK,
		CorrAccount:   p.CorrAccount,
		Email:         p.Email,
		Phone:         p.Phone,
		IsDefault:     p.IsDefault,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (row profileRow) toModel() model.ExecutorProfile {
	return model.ExecutorProfile{
		ID:            row.ID,
		ProfileName:   row.ProfileName,
		OrgType:       model.ExecutorOrgType(row.OrgType),
		FullName:      row.FullName,
		ShortName:     row.ShortName,
		LegalAddress:  row.LegalAddress,
		PostalAddress: row.PostalAddress,
		INN:           row.INN,
		OGRN:          row.OGRN,
		BankAccount:   row.BankAccount,
		BankName:      row.BankName,
		BIK:           row.BIK,
		CorrAccount:   row.CorrAccount,
		Email:         row.Email,
		Phone:         row.Phone,
		IsDefault:     row.IsDefault,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
