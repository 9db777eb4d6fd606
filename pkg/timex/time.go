// Package timex 提供 JSON 友好的时间类型
package timex

import (
	"strings"
	"time"
)

// Layout 序列化格式
const Layout = "2006-01-02 15:04:05"

// Time 以 Layout 格式序列化的时间，零值序列化为空字符串
type Time time.Time

func (t Time) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	b := make([]byte, 0, len(Layout)+2)
	b = append(b, '"')
	b = tt.AppendFormat(b, Layout)
	b = append(b, '"')
	return b, nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	tt, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(tt)
	return nil
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

// Std 返回 time.Time
func (t Time) Std() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}
