package session

import "time"

// sessionKey is the fixed key of the single persisted session record.
const sessionKey = "session"

// schemaVersion tags the persisted layout. Version 0 records predate the
// tag; their payload has the same user JSON shape and is upgraded in place
// on the next write.
const schemaVersion = 1

// Record is the durable form of a session: the whole serialized User,
// replaced atomically on every mutation.
type Record struct {
	Key           string `gorm:"primaryKey;size:64"`
	SchemaVersion int
	Data          []byte
	UpdatedAt     time.Time
}

func (Record) TableName() string { return "session_records" }
