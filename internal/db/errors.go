package db

import "errors"

// ErrKeyNotFound signals a read of an absent key.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants map to store command names for error context.
const (
	OpDel       = "DEL"
	OpExists    = "EXISTS"
	OpHGetAll   = "HGETALL"
	OpHSet      = "HSET"
	OpSAdd      = "SADD"
	OpSMembers  = "SMEMBERS"
	OpSRem      = "SREM"
	OpScan      = "SCAN"
	OpZAdd      = "ZADD"
	OpZRem      = "ZREM"
	OpZRevRange = "ZREVRANGE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
