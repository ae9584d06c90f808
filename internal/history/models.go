package history

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one row of the history log: one successful CLI transform
// invocation. Grounded on models.Stage's gorm tagging style from the
// teacher repo (varchar-typed columns, an index on the field queried
// most, autoCreateTime for the timestamp, a datatypes.JSON column for
// open-ended per-run metadata mirroring Stage.ConfidenceFactors).
type Entry struct {
	ID uint `gorm:"primaryKey"`

	Path     string `gorm:"type:varchar(4096);index"`
	Language string `gorm:"type:varchar(50);not null"`
	Mode     string `gorm:"type:varchar(20);not null"`

	OriginalBytes    int `gorm:"not null"`
	TransformedBytes int `gorm:"not null"`
	OriginalLines    int `gorm:"not null"`
	TransformedLines int `gorm:"not null"`

	DurationMS float64 `gorm:"type:decimal(10,3)"`

	ContentHash string `gorm:"type:varchar(64);index"`

	// Warnings carries non-fatal diagnostics from the run that produced
	// this entry (e.g. symlinks skipped during directory expansion).
	Warnings datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName customizes the table name, mirroring models.Stage's
// TableName override.
func (Entry) TableName() string { return "history_entries" }
