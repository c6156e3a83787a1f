package userstore

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the canonical last-auth timestamp layout. The trailing 'L'
// marks the value as local time and is matched literally.
const TimeLayout = "2006-01-02T15:04:05L"

const fieldSeparators = " \t\r\n\v"

// LineKind classifies one parsed users-file line.
type LineKind int

const (
	// LineSkip marks comments and blank lines, passed through verbatim on
	// rewrite.
	LineSkip LineKind = iota
	// LineInvalid marks a malformed entry. It carries a diagnostic reason
	// and is also passed through verbatim on rewrite.
	LineInvalid
	// LineRecord marks a well-formed user record.
	LineRecord
)

// ParsedLine is the tagged result of parsing one line.
type ParsedLine struct {
	Kind   LineKind
	Reason string // diagnostic, set when Kind == LineInvalid
	Record Record // set when Kind == LineRecord
}

func skip() ParsedLine { return ParsedLine{Kind: LineSkip} }

func invalid(format string, args ...any) ParsedLine {
	return ParsedLine{Kind: LineInvalid, Reason: fmt.Sprintf(format, args...)}
}

// ParseLine parses one users-file line into a record, a skip marker for
// comments and blank lines, or an invalid marker with a reason. The line may
// include its trailing newline.
func ParseLine(line string) ParsedLine {
	if strings.HasPrefix(line, "#") {
		return skip()
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(fieldSeparators, r)
	})
	if len(fields) == 0 {
		return skip()
	}

	rec, ok := parseTokenType(fields[0])
	if !ok {
		return invalid("invalid token type %q", fields[0])
	}

	if len(fields) < 2 {
		return invalid("missing username field")
	}
	rec.Username = fields[1]

	if len(fields) < 3 {
		return invalid("missing PIN field")
	}
	if fields[2] != "-" {
		rec.PIN = fields[2]
	}

	if len(fields) < 4 {
		return invalid("missing token key field")
	}
	key, err := hex.DecodeString(fields[3])
	if err != nil {
		return invalid("malformed hex token key %q", fields[3])
	}
	if len(key) > MaxKeyBytes {
		return invalid("token key longer than %d bytes", MaxKeyBytes)
	}
	rec.Key = key

	// Remaining fields are optional; a record without them has never been
	// used to authenticate.
	if len(fields) < 5 {
		return ParsedLine{Kind: LineRecord, Record: rec}
	}
	offset, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return invalid("invalid counter offset %q", fields[4])
	}
	rec.Offset = offset

	if len(fields) < 6 {
		return ParsedLine{Kind: LineRecord, Record: rec}
	}
	rec.LastOTP = fields[5]

	if len(fields) < 7 {
		return invalid("missing last auth timestamp field")
	}
	lastAuth, err := time.ParseInLocation(TimeLayout, fields[6], time.Local)
	if err != nil {
		return invalid("invalid auth timestamp %q", fields[6])
	}
	rec.LastAuth = lastAuth

	return ParsedLine{Kind: LineRecord, Record: rec}
}

// parseTokenType parses "ALGO[/(E|T<seconds>)][/<digits>]" and applies the
// per-algorithm defaults to the omitted sub-fields.
func parseTokenType(token string) (Record, bool) {
	// Aliases from early users files predating the full grammar.
	switch token {
	case "E":
		token = "HOTP/E"
	case "T":
		token = "HOTP/T30"
	}

	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return Record{}, false
	}

	var rec Record
	switch strings.ToUpper(parts[0]) {
	case "HOTP":
		rec.Algorithm = AlgorithmHOTP
		rec.TimeInterval = 0
	case "MOTP":
		rec.Algorithm = AlgorithmMOTP
		rec.TimeInterval = MOTPDefaultInterval
	default:
		return Record{}, false
	}
	rec.Digits = DefaultDigits

	if len(parts) > 1 {
		switch {
		case parts[1] == "E":
			rec.TimeInterval = 0
		case strings.HasPrefix(parts[1], "T"):
			raw := parts[1][1:]
			if !leadingDigit(raw) {
				return Record{}, false
			}
			interval, err := strconv.Atoi(raw)
			if err != nil || interval <= 0 {
				return Record{}, false
			}
			rec.TimeInterval = interval
		default:
			return Record{}, false
		}
	}

	if len(parts) > 2 {
		if !leadingDigit(parts[2]) {
			return Record{}, false
		}
		digits, err := strconv.Atoi(parts[2])
		if err != nil || digits < MinDigits || digits > MaxDigits {
			return Record{}, false
		}
		rec.Digits = digits
	}

	return rec, true
}

func leadingDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// EncodeRecord renders a record as its canonical users-file line, without a
// trailing newline. Token-type sub-fields equal to the algorithm defaults
// are abbreviated away, and the last-auth timestamp is emitted only when the
// record has a last OTP. EncodeRecord is the inverse of ParseLine for valid
// records.
func EncodeRecord(r Record) string {
	interval := "/E"
	if r.TimeInterval != 0 {
		interval = fmt.Sprintf("/T%d", r.TimeInterval)
	}
	digits := fmt.Sprintf("/%d", r.Digits)

	if r.Digits == DefaultDigits {
		digits = ""
		switch {
		case r.Algorithm == AlgorithmHOTP && r.TimeInterval == 0:
			interval = ""
		case r.Algorithm == AlgorithmMOTP && r.TimeInterval == MOTPDefaultInterval:
			interval = ""
		}
	}
	token := r.Algorithm.String() + interval + digits

	pin := r.PIN
	if pin == "" {
		pin = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-7s %-13s %-7s ", token, r.Username, pin)
	b.WriteString(hex.EncodeToString(r.Key))
	fmt.Fprintf(&b, " %-7d", r.Offset)
	if r.LastOTP != "" {
		fmt.Fprintf(&b, " %-7s %s", r.LastOTP, r.LastAuth.Local().Format(TimeLayout))
	}
	return b.String()
}
