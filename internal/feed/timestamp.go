package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/domain"
)

const (
	dateLayout  = "Jan 02, 2006"
	clockLayout = "15:04:05"
	notAvail    = "N/A"
)

type Encoding string

const (
	EncodingEpochMillis  Encoding = "epoch_ms"
	EncodingSQLTimestamp Encoding = "sql_timestamp"
	EncodingNative       Encoding = "native"
	EncodingUnknown      Encoding = "unknown"
)

// Timestamp is the canonical form of a raw event timestamp. When Valid is
// false Instant is the zero time and both rendered parts read N/A.
type Timestamp struct {
	Raw      string
	Instant  time.Time
	Valid    bool
	Encoding Encoding
}

type strategy struct {
	encoding Encoding
	parse    func(raw string) (time.Time, bool)
}

// Tried in order, first success wins.
var strategies = []strategy{
	{EncodingEpochMillis, parseEpochMillis},
	{EncodingSQLTimestamp, parseSQLTimestamp},
	{EncodingNative, parseNative},
}

var logger log.FieldLogger = log.StandardLogger()

// SetLogger replaces the logger used to report unparseable timestamps.
func SetLogger(l log.FieldLogger) {
	if l == nil {
		l = log.StandardLogger()
	}
	logger = l
}

// Normalize converts a raw timestamp into a canonical UTC instant. It never
// panics; on exhaustion it returns the invalid sentinel and logs the raw value.
func Normalize(raw string) Timestamp {
	for _, s := range strategies {
		if t, ok := attempt(s.parse, raw); ok {
			return Timestamp{Raw: raw, Instant: t.UTC(), Valid: true, Encoding: s.encoding}
		}
	}

	logger.WithField("raw", raw).Warn("unrecognized timestamp encoding")
	return Timestamp{Raw: raw, Encoding: EncodingUnknown}
}

func attempt(parse func(string) (time.Time, bool), raw string) (t time.Time, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()
	return parse(raw)
}

var epochMillisRe = regexp.MustCompile(`^\d{13}$`)

func parseEpochMillis(raw string) (time.Time, bool) {
	if !epochMillisRe.MatchString(raw) {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// YYYY-MM-DD HH:MM:SS[.fraction][±HH[[:]MM]]
var sqlTimestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\d{2}:\d{2}:\d{2})(\.\d+)?(?:([+-]\d{2})(?::?(\d{2}))?)?$`)

func parseSQLTimestamp(raw string) (time.Time, bool) {
	m := sqlTimestampRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	datePart, clockPart, fraction, zoneHours, zoneMinutes := m[1], m[2], m[3], m[4], m[5]

	zone := "+00:00"
	if zoneHours != "" {
		if zoneMinutes == "" {
			zoneMinutes = "00"
		}
		zone = zoneHours + ":" + zoneMinutes
	}

	iso := datePart + "T" + clockPart + fraction + zone
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Input shaped like a SQL timestamp that the strict strategy refused is
// malformed, not a candidate for guessing.
var sqlPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

func parseNative(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || sqlPrefixRe.MatchString(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.IsZero() || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

func (t Timestamp) location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// DateString renders the calendar date part.
func (t Timestamp) DateString(loc *time.Location) string {
	if !t.Valid {
		return notAvail
	}
	return t.Instant.In(t.location(loc)).Format(dateLayout)
}

// ClockString renders the time-of-day part.
func (t Timestamp) ClockString(loc *time.Location) string {
	if !t.Valid {
		return notAvail
	}
	return t.Instant.In(t.location(loc)).Format(clockLayout)
}

func (t Timestamp) View(loc *time.Location) domain.TimestampView {
	v := domain.TimestampView{
		Raw:      t.Raw,
		Valid:    t.Valid,
		Date:     t.DateString(loc),
		Time:     t.ClockString(loc),
		Encoding: string(t.Encoding),
	}
	if t.Valid {
		instant := t.Instant
		v.Instant = &instant
	}
	return v
}

// After orders timestamps for the feed: valid ones by instant, and every
// valid timestamp counts as newer than any invalid one.
func (t Timestamp) After(o Timestamp) bool {
	if t.Valid != o.Valid {
		return t.Valid
	}
	if !t.Valid {
		return false
	}
	return t.Instant.After(o.Instant)
}
