// Package trace decodes ns-2 style packet event lines into typed records.
// It has no dependencies on analysis/ and stores pure data types.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies the event code in field 0 of a trace line.
type Kind string

const (
	// KindEnqueue is a packet entering a link queue ("+"); treated as a send.
	KindEnqueue Kind = "+"
	// KindReceive is a packet arriving at the destination end of a link ("r").
	KindReceive Kind = "r"
	// KindOther covers dequeue, drop and any other event code.
	KindOther Kind = "other"
)

// MinFields is the number of whitespace-separated fields a line needs to be decoded.
const MinFields = 12

// Field positions within a trace line.
const (
	fieldEvent  = 0
	fieldTime   = 1
	fieldSrc    = 2
	fieldDst    = 3
	fieldType   = 4
	fieldFlowID = 7
	fieldSize   = 8
	fieldSeqNo  = 10
)

// Event is one decoded trace line.
type Event struct {
	Kind       Kind
	Code       string // raw event code, kept for KindOther
	Time       float64
	Src        string
	Dst        string
	PacketType string
	FlowID     string // decoded but not used in aggregation
	Size       int
	SeqNo      string // opaque token, compared for equality only
}

// ParseError reports a trace line whose simulation time could not be parsed.
type ParseError struct {
	Field int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %d %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// KindOf maps a raw event code to its Kind.
func KindOf(code string) Kind {
	switch Kind(code) {
	case KindEnqueue:
		return KindEnqueue
	case KindReceive:
		return KindReceive
	default:
		return KindOther
	}
}

// DecodeLine parses one trace line.
// Returns ok=false with a nil error for lines with fewer than MinFields fields;
// such lines are skipped entirely, including their timestamp.
// An unparsable size decodes as 0; an unparsable time returns a *ParseError.
func DecodeLine(line string) (Event, bool, error) {
	parts := strings.Fields(line)
	if len(parts) < MinFields {
		return Event{}, false, nil
	}

	t, err := strconv.ParseFloat(parts[fieldTime], 64)
	if err != nil {
		return Event{}, false, &ParseError{Field: fieldTime, Value: parts[fieldTime], Err: err}
	}

	size := 0
	if f, err := strconv.ParseFloat(parts[fieldSize], 64); err == nil {
		size = int(f)
	}

	return Event{
		Kind:       KindOf(parts[fieldEvent]),
		Code:       parts[fieldEvent],
		Time:       t,
		Src:        parts[fieldSrc],
		Dst:        parts[fieldDst],
		PacketType: parts[fieldType],
		FlowID:     parts[fieldFlowID],
		Size:       size,
		SeqNo:      parts[fieldSeqNo],
	}, true, nil
}
