package meetinglist

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBadFilter is returned for unknown filter keys or malformed values.
var ErrBadFilter = errors.New("bad meeting filter")

// Filter is a set of equality constraints on meeting fields.
// Values are already typed for the store (ObjectIDs for references).
type Filter map[string]any

type fieldKind int

const (
	kindString fieldKind = iota
	kindObjectID
	kindDate
)

// filterable lists the fields callers may constrain and how to parse them.
// Equality on an array field (attendes, attendesLead) matches any element.
// Dates are RFC3339 and match the stored instant exactly.
var filterable = map[string]fieldKind{
	"_id":          kindObjectID,
	"createBy":     kindObjectID,
	"attendes":     kindObjectID,
	"attendesLead": kindObjectID,
	"agenda":       kindString,
	"location":     kindString,
	"notes":        kindString,
	"related":      kindString,
	"dateTime":     kindDate,
	"timestamp":    kindDate,
	"createdDate":  kindDate,
}

// ParseFilter builds a Filter from query parameters. Only the first value of
// each key is used. "deleted" is dropped because listing always forces it.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "deleted" {
			continue
		}
		kind, ok := filterable[k]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrBadFilter, k)
		}
		v := q.Get(k)
		switch kind {
		case kindObjectID:
			oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%w: %s is not an id", ErrBadFilter, k)
			}
			f[k] = oid
		case kindDate:
			ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%w: %s is not an RFC3339 date", ErrBadFilter, k)
			}
			f[k] = ts.UTC()
		default:
			f[k] = v
		}
	}
	return f, nil
}

// listQuery combines the caller's constraints with deleted=false.
func (f Filter) listQuery() bson.M {
	q := bson.M{}
	for k, v := range f {
		q[k] = v
	}
	q["deleted"] = false
	return q
}
