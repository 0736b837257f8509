package pattern

import (
	"fmt"
	"regexp"
	"strconv"

	"clipdate/internal/domain"
)

// Rule is one known filename shape.
type Rule interface {
	Name() string
	// Extract reports whether stem (a filename without extension) has the
	// rule's shape and returns the timestamp its digit groups encode.
	// The timestamp is not validated.
	Extract(stem string) (domain.Timestamp, bool)
}

// Digit-group fragments shared by the built-in rules.
const (
	year   = `(?P<year>\d{4})`
	month  = `(?P<month>\d{2})`
	day    = `(?P<day>\d{2})`
	hour   = `(?P<hour>\d{2})`
	minute = `(?P<minute>\d{2})`
	second = `(?P<second>\d{2})`
)

var groupNames = []string{"year", "month", "day", "hour", "minute", "second"}

type regexpRule struct {
	name    string
	re      *regexp.Regexp
	indexes [6]int
}

// NewRule compiles expr into a Rule. expr must be anchored and must define
// the named groups year, month, day, hour, minute and second.
func NewRule(name, expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	r := regexpRule{name: name, re: re}
	for i, group := range groupNames {
		idx := re.SubexpIndex(group)
		if idx < 0 {
			return nil, fmt.Errorf("rule %s: missing group %q", name, group)
		}
		r.indexes[i] = idx
	}
	return r, nil
}

func MustRule(name, expr string) Rule {
	r, err := NewRule(name, expr)
	if err != nil {
		panic(err)
	}
	return r
}

func (r regexpRule) Name() string {
	return r.name
}

func (r regexpRule) Extract(stem string) (domain.Timestamp, bool) {
	m := r.re.FindStringSubmatch(stem)
	if m == nil {
		return domain.Timestamp{}, false
	}
	var parts [6]int
	for i, idx := range r.indexes {
		n, err := strconv.Atoi(m[idx])
		if err != nil {
			return domain.Timestamp{}, false
		}
		parts[i] = n
	}
	return domain.Timestamp{
		Year:   parts[0],
		Month:  parts[1],
		Day:    parts[2],
		Hour:   parts[3],
		Minute: parts[4],
		Second: parts[5],
	}, true
}

// Built-in rules in priority order. Every rule is anchored on its literal
// separators so trailing segment or lens counters never reach a digit group.
var (
	// VID_20230815_143022_00_001, IMG_20240101_000000, LRV_..., PRO_VID_...
	Insta360 = MustRule("insta360",
		`(?i)^(?:PRO_)?(?:VID|IMG|LRV)_`+year+month+day+`_`+hour+minute+second+`(?:_\d+)*$`)

	// DJI_20230815143022_0001_D
	DJI = MustRule("dji",
		`(?i)^DJI_`+year+month+day+hour+minute+second+`(?:_\d{4})?(?:_[a-z])?$`)

	// PXL_20230815_143022123, PXL_20230815_143022123.LS
	Pixel = MustRule("pixel",
		`(?i)^PXL_`+year+month+day+`_`+hour+minute+second+`\d{3}(?:\.[a-z0-9_~-]+)*$`)

	// MVIMG_20230815_143022, Screenrecorder_20230815_143022-1
	Prefixed = MustRule("prefixed",
		`(?i)^[a-z]+_`+year+month+day+`_`+hour+minute+second+`(?:[_-]\d+)*$`)

	// 20230815_143022, 20230815_143022_1
	Compact = MustRule("compact",
		`^`+year+month+day+`_`+hour+minute+second+`(?:_\d+)*$`)

	// 2023_0815_143022_001
	Dashcam = MustRule("dashcam",
		`^`+year+`_`+month+day+`_`+hour+minute+second+`(?:_\d+)*$`)

	// 2023-08-15 14-30-22, 2023-08-15_14.30.22, 2023-08-15T14:30:22
	ISO = MustRule("iso",
		`^`+year+`-`+month+`-`+day+`[ _Tt]`+hour+`[-.:]`+minute+`[-.:]`+second+`(?:[_ -]\d+)*$`)
)

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{Insta360, DJI, Pixel, Prefixed, Compact, Dashcam, ISO}
}
