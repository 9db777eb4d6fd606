package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

var secondsParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// CronParser accepts Quartz style expressions (seconds first, optional
// year), six field expressions with seconds, five field standard
// expressions and @descriptors.
// CronParser 解析 Quartz 表达式、带秒的六段表达式、标准五段表达式和 @ 描述符
type CronParser struct{}

// Parse implements cron.ScheduleParser
func (CronParser) Parse(spec string) (cron.Schedule, error) {
	return ParseCron(spec)
}

// ParseCron parses a schedule expression
// ParseCron 解析调度表达式
func ParseCron(spec string) (cron.Schedule, error) {
	normalized, err := NormalizeCron(spec)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(normalized)
	if strings.HasPrefix(fields[0], "TZ=") || strings.HasPrefix(fields[0], "CRON_TZ=") {
		fields = fields[1:]
	}
	if len(fields) == 5 {
		return cron.ParseStandard(normalized)
	}
	return secondsParser.Parse(normalized)
}

// NormalizeCron rewrites a Quartz expression into the six field form.
// The year field is only accepted as "*" or "?". Numeric Quartz
// day-of-week values (1=SUN..7=SAT) are shifted to 0..6.
// NormalizeCron 将 Quartz 表达式转换为六段格式
func NormalizeCron(spec string) (string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", fmt.Errorf("empty cron expression")
	}
	if strings.HasPrefix(spec, "@") {
		return spec, nil
	}

	prefix := ""
	if strings.HasPrefix(spec, "TZ=") || strings.HasPrefix(spec, "CRON_TZ=") {
		i := strings.IndexAny(spec, " \t")
		if i < 0 {
			return "", fmt.Errorf("cron expression %q: missing fields after time zone", spec)
		}
		prefix, spec = spec[:i]+" ", strings.TrimSpace(spec[i:])
		if strings.HasPrefix(spec, "@") {
			return prefix + spec, nil
		}
	}

	fields := strings.Fields(spec)
	switch len(fields) {
	case 5:
		return prefix + strings.Join(fields, " "), nil
	case 7:
		if year := fields[6]; year != "*" && year != "?" {
			return "", fmt.Errorf("cron expression %q: year field %q is not supported", spec, year)
		}
		fields = fields[:6]
	case 6:
	default:
		return "", fmt.Errorf("cron expression %q: expected 5, 6 or 7 fields, got %d", spec, len(fields))
	}

	dow, err := quartzDow(fields[5])
	if err != nil {
		return "", fmt.Errorf("cron expression %q: %w", spec, err)
	}
	fields[5] = dow
	return prefix + strings.Join(fields, " "), nil
}

// quartzDow shifts purely numeric lists and ranges ("2-6", "1,7") from
// Quartz to cron numbering. Names, "*", "?" and steps are left untouched.
func quartzDow(field string) (string, error) {
	if strings.ContainsAny(field, "LW#") && !strings.ContainsAny(field, "ABCDEFGHIJKMNOPQRSTUVXYZ") {
		return "", fmt.Errorf("day-of-week %q uses an unsupported Quartz modifier", field)
	}
	if strings.Trim(field, "0123456789,-") != "" {
		return field, nil
	}
	var b strings.Builder
	num := ""
	flush := func() error {
		if num == "" {
			return nil
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 || n > 7 {
			return fmt.Errorf("day-of-week %q out of range 1-7", num)
		}
		b.WriteString(strconv.Itoa(n - 1))
		num = ""
		return nil
	}
	for _, r := range field {
		if r >= '0' && r <= '9' {
			num += string(r)
			continue
		}
		if err := flush(); err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	if err := flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}
