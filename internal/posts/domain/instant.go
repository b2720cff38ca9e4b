package domain

import "time"

// Instant is a point in time as delivered by one of the persistence
// backends. The relational store hands back native times; the document
// store hands back timestamp objects that produce a time on request.
//
// The set of variants is closed: NativeTime and SourcedTime.
type Instant interface {
	isInstant()
}

// TimeSource produces a time value on demand.
type TimeSource interface {
	ToTime() time.Time
}

// NativeTime is an Instant held as a time.Time.
type NativeTime struct {
	Time time.Time
}

// SourcedTime is an Instant held by a value that converts itself to a
// time.Time, such as a document-store Timestamp.
type SourcedTime struct {
	Source TimeSource
}

func (NativeTime) isInstant()  {}
func (SourcedTime) isInstant() {}

// At wraps t as an Instant.
func At(t time.Time) Instant {
	return NativeTime{Time: t}
}

// From wraps src as an Instant.
func From(src TimeSource) Instant {
	return SourcedTime{Source: src}
}

// InstantTime coerces either Instant variant to a time.Time. A nil Instant,
// or a SourcedTime without a source, yields the zero time.
func InstantTime(i Instant) time.Time {
	switch v := i.(type) {
	case NativeTime:
		return v.Time
	case SourcedTime:
		if v.Source == nil {
			return time.Time{}
		}
		return v.Source.ToTime()
	default:
		return time.Time{}
	}
}

// Timestamp is the seconds/nanoseconds shape used by the document store and
// its JSON exports.
type Timestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int32 `json:"_nanoseconds"`
}

// ToTime implements TimeSource.
func (t Timestamp) ToTime() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanoseconds)).UTC()
}

// TimestampOf converts t to the document-store shape.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanoseconds: int32(t.Nanosecond())}
}
