package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/contractgen/internal/model"
)

// lineItems хранится в JSONB
type lineItems []model.ServiceLineItem

func (l lineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]model.ServiceLineItem(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *lineItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported pricing_services type %T", src)
	}
	return json.Unmarshal(raw, (*[]model.ServiceLineItem)(l))
}

type historyRow struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID  `gorm:"column:user_id"`
	INN               string     `gorm:"column:inn"`
	CompanyName       string     `gorm:"column:company_name"`
	FileName          string     `gorm:"column:filename"`
	ContractNumber    string     `gorm:"column:contract_number"`
	ContractDate      string     `gorm:"column:contract_date"`
	Services          string     `gorm:"column:services"`
	PricingServices   lineItems  `gorm:"column:pricing_services;type:jsonb"`
	PackingPercentage string     `gorm:"column:packing_percentage"`
	PrepaymentAmount  string     `gorm:"column:prepayment_amount"`
	BankDetails       string     `gorm:"column:bank_details"`
	ExecutorProfileID *uuid.UUID `gorm:"column:executor_profile_id"`
	ExecutorName      string     `gorm:"column:executor_name"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
}

func (historyRow) TableName() string { return "contract_history" }

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, record *model.HistoryRecord) error {
	row := historyRowFromModel(*record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}

// ListByUser возвращает записи пользователя, новые первыми
func (r *HistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.HistoryRecord, error) {
	var rows []historyRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]model.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}
	return records, nil
}

func (r *HistoryRepository) Get(ctx context.Context, id, userID uuid.UUID) (*model.HistoryRecord, error) {
	var row historyRow
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error; err != nil {
		return nil, err
	}
	record := row.toModel()
	return &record, nil
}

func historyRowFromModel(h model.HistoryRecord) historyRow {
	return historyRow{
		ID:                h.ID,
		UserID:            h.UserID,
		INN:               h.INN,
		CompanyName:       h.CompanyName,
		FileName:          h.FileName,
		ContractNumber:    h.ContractNumber,
		ContractDate:      h.ContractDate,
		Services:          h.Services,
		PricingServices:   lineItems(h.PricingServices),
		PackingPercentage: h.PackingPercentage,
		PrepaymentAmount:  h.PrepaymentAmount,
		BankDetails:       h.BankDetails,
		ExecutorProfileID: h.ExecutorProfileID,
		ExecutorName:      h.ExecutorName,
		CreatedAt:         h.CreatedAt,
	}
}

func (row historyRow) toModel() model.HistoryRecord {
	return model.HistoryRecord{
		ID:                row.ID,
		UserID:            row.UserID,
		INN:               row.INN,
		CompanyName:       row.CompanyName,
		FileName:          row.FileName,
		ContractNumber:    row.ContractNumber,
		ContractDate:      row.ContractDate,
		Services:          row.Services,
		PricingServices:   []model.ServiceLineItem(row.PricingServices),
		PackingPercentage: row.PackingPercentage,
		PrepaymentAmount:  row.PrepaymentAmount,
		BankDetails:       row.BankDetails,
		ExecutorProfileID: row.ExecutorProfileID,
		ExecutorName:      row.ExecutorName,
		CreatedAt:         row.CreatedAt,
	}
}
