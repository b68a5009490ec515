package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is one key of the store. Values are JSON documents.
type KVRecord struct {
	Key       string    `gorm:"column:record_key;primaryKey"`
	Value     string    `gorm:"column:record_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}

type KVStore struct {
	database *gorm.DB
}

func NewKVStore(database *gorm.DB) *KVStore {
	return &KVStore{database: database}
}

// Get reports found=false when the key was never written or was deleted.
func (repo *KVStore) Get(key string) (string, bool, error) {
	var record KVRecord
	err := repo.database.Where("record_key = ?", key).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Value, true, nil
}

func (repo *KVStore) Put(key string, value string) error {
	return putRecord(repo.database, key, value)
}

// PutMany writes every pair in one transaction; either all keys change or none.
func (repo *KVStore) PutMany(values map[string]string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if err := putRecord(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *KVStore) Delete(key string) error {
	return repo.database.Where("record_key = ?", key).Delete(&KVRecord{}).Error
}

func (repo *KVStore) Keys() ([]string, error) {
	keys := make([]string, 0)
	if err := repo.database.Model(&KVRecord{}).Order("record_key").Pluck("record_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (repo *KVStore) All() ([]KVRecord, error) {
	records := make([]KVRecord, 0)
	if err := repo.database.Order("record_key").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func putRecord(database *gorm.DB, key string, value string) error {
	record := KVRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"record_value", "updated_at"}),
	}).Create(&record).Error
}
