package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

const SnapshotVersion = 1

type RecordStore interface {
	Keys() ([]string, error)
	Get(key string) (string, bool, error)
	PutMany(values map[string]string) error
}

// RecordValidator decodes a raw stored value under the rules of its key.
type RecordValidator func(key string, raw string) error

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Snapshot is the portable copy of the whole store. Records hold the raw JSON
// value of every key.
type Snapshot struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Records    map[string]json.RawMessage `json:"records"`
}

type ImportReport struct {
	Keys            []string `json:"keys"`
	HashedPasswords int      `json:"hashedPasswords"`
}

type BackupService struct {
	mu          sync.Mutex
	records     RecordStore
	validate    RecordValidator
	accountsKey string
	hasher      PasswordHasher
	now         func() time.Time
}

func NewBackupService(records RecordStore, validate RecordValidator, accountsKey string, hasher PasswordHasher) *BackupService {
	return &BackupService{
		records:     records,
		validate:    validate,
		accountsKey: accountsKey,
		hasher:      hasher,
		now:         time.Now,
	}
}

func (service *BackupService) Export() (Snapshot, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	keys, err := service.records.Keys()
	if err != nil {
		return Snapshot{}, err
	}
	snapshot := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: service.now().UTC(),
		Records:    make(map[string]json.RawMessage, len(keys)),
	}
	for _, key := range keys {
		raw, found, err := service.records.Get(key)
		if err != nil {
			return Snapshot{}, err
		}
		if found {
			snapshot.Records[key] = json.RawMessage(raw)
		}
	}
	return snapshot, nil
}

// Import validates every record before writing any of them.
func (service *BackupService) Import(snapshot Snapshot) (ImportReport, error) {
	if len(snapshot.Records) == 0 {
		return ImportReport{}, fmt.Errorf("%w: no records", ErrInvalidSnapshot)
	}

	keys := make([]string, 0, len(snapshot.Records))
	for key := range snapshot.Records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := ImportReport{Keys: keys}
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		raw := []byte(snapshot.Records[key])
		if key == service.accountsKey {
			upgraded, hashed, err := service.hashLegacyPasswords(raw)
			if err != nil {
				return ImportReport{}, fmt.Errorf("%w: %s: %w", ErrInvalidSnapshot, key, err)
			}
			raw = upgraded
			report.HashedPasswords = hashed
		}
		if err := service.validate(key, string(raw)); err != nil {
			return ImportReport{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		values[key] = string(raw)
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	if err := service.records.PutMany(values); err != nil {
		return ImportReport{}, err
	}
	return report, nil
}

// hashLegacyPasswords replaces the plaintext "senha" field kept by the browser
// version with a "senhaHash". The plaintext never survives, even on records
// that already carry a hash.
func (service *BackupService) hashLegacyPasswords(raw []byte) ([]byte, int, error) {
	accounts := make([]map[string]json.RawMessage, 0)
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, 0, err
	}

	hashed := 0
	changed := false
	for _, account := range accounts {
		plain, hasPlain := account["senha"]
		if !hasPlain {
			continue
		}
		delete(account, "senha")
		changed = true
		if _, hasHash := account["senhaHash"]; hasHash {
			continue
		}

		var password string
		if err := json.Unmarshal(plain, &password); err != nil {
			return nil, 0, fmt.Errorf("senha: %w", err)
		}
		hash, err := service.hasher.HashPassword(password)
		if err != nil {
			return nil, 0, err
		}
		encoded, err := json.Marshal(hash)
		if err != nil {
			return nil, 0, err
		}
		account["senhaHash"] = encoded
		hashed++
	}

	if !changed {
		return raw, 0, nil
	}
	upgraded, err := json.Marshal(accounts)
	if err != nil {
		return nil, 0, err
	}
	return upgraded, hashed, nil
}

// ParseSnapshot reads either an exported snapshot or a flat browser
// localStorage dump, where every value is a JSON document encoded as a string.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if _, isSnapshot := probe["records"]; isSnapshot {
		var snapshot Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		if snapshot.Version > SnapshotVersion {
			return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snapshot.Version)
		}
		return snapshot, nil
	}

	snapshot := Snapshot{Version: SnapshotVersion, Records: make(map[string]json.RawMessage, len(probe))}
	for key, value := range probe {
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) > 0 && trimmed[0] == '"' {
			var text string
			if err := json.Unmarshal(trimmed, &text); err != nil {
				return Snapshot{}, fmt.Errorf("%w: %s: %w", ErrInvalidSnapshot, key, err)
			}
			trimmed = []byte(text)
		}
		snapshot.Records[key] = json.RawMessage(trimmed)
	}
	return snapshot, nil
}
