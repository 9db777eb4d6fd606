package util

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// DateLayout is the calendar layout of dated export folders (YYYY-MM-DD)
// DateLayout 导出目录名使用的日期格式
const DateLayout = "2006-01-02"

// GetZeroTime gets 0:00 time of a certain day
// GetZeroTime 获取某一天的0点时间
// d: given time
// d: 传入的时间
// return: 0:00 time of that day
// 返回值: 当天的0点时间
func GetZeroTime(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// DaysBefore returns 0:00 of the day that lies days calendar days before d
// DaysBefore 返回 d 之前 days 天的0点时间
func DaysBefore(d time.Time, days int) time.Time {
	return GetZeroTime(d).AddDate(0, 0, -days)
}

// ParseDate parses a YYYY-MM-DD string as 0:00 of that day in loc
// ParseDate 按 YYYY-MM-DD 解析日期，返回 loc 时区当天0点
func ParseDate(in string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(in), loc)
}

// LoadLocation resolves a config time zone name, empty means Local
// LoadLocation 解析配置中的时区名称，空字符串表示本地时区
func LoadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	default:
		return time.LoadLocation(name)
	}
}

// ParseDuration parses duration string, supports 'd' (day) suffix
// ParseDuration 解析时间字符串，支持 'd' (天) 后缀
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	// If it is pure numbers, default to seconds
	// 如果是纯数字，默认为秒
	if _, err := strconv.Atoi(s); err == nil {
		s += "s"
	}
	return time.ParseDuration(s)
}
