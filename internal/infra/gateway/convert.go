package gateway

import (
	"time"

	"stamp-rally/internal/infra/upstream"

	"github.com/jinzhu/copier"
)

// copyOptions maps upstream timestamp strings onto time.Time fields; unreadable values become
// the zero time.
func copyOptions(loc *time.Location) copier.Option {
	return copier.Option{
		Converters: []copier.TypeConverter{{
			SrcType: "",
			DstType: time.Time{},
			Fn: func(src any) (any, error) {
				s, _ := src.(string)
				if s == "" {
					return time.Time{}, nil
				}
				t, err := upstream.ParseTimestamp(s, loc)
				if err != nil {
					return time.Time{}, nil
				}
				return t, nil
			},
		}},
	}
}
