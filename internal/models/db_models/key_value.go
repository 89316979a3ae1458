package db_models

// KeyValue is one persisted key of the postgres store backend.
type KeyValue struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"type:bytea;not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (KeyValue) TableName() string { return "key_values" }
