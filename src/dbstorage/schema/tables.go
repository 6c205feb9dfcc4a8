package schema

import (
	"time"
)

// One row per final verdict. Runs are append-only; history queries go
// through checked_at.
type Check struct {
	ID          uint64    `xorm:"bigint pk autoincr 'id'"`
	URL         string    `xorm:"varchar(2048) notnull 'url'"`
	Verdict     string    `xorm:"varchar(16) notnull 'verdict'"`
	StatusCode  int       `xorm:"int 'status_code'"`
	ContentType string    `xorm:"varchar(256) 'content_type'"`
	FinalURL    string    `xorm:"varchar(2048) 'final_url'"`
	Attempts    int       `xorm:"int 'attempts'"`
	ElapsedMs   int64     `xorm:"bigint 'elapsed_ms'"`
	Size        int64     `xorm:"bigint 'size'"`
	Confidence  string    `xorm:"varchar(16) 'confidence'"`
	Detail      string    `xorm:"text 'detail'"`
	CheckedAt   time.Time `xorm:"created notnull 'checked_at'"`
}

func (c *Check) TableName() string {
	return "checks"
}
