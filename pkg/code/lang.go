package code

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

// Default language is English // 默认语言为英文
var lng = "en"

const FALLBACK_LNG = "en"

// SetGlobalDefaultLang sets the response language, unknown values fall back to English
// SetGlobalDefaultLang 设置响应语言，未知语言回退到英文
func SetGlobalDefaultLang(l string) {
	switch l {
	case "en", "zh_cn":
		lng = l
	default:
		lng = FALLBACK_LNG
	}
}

// GetMessage returns the message in the current language
// GetMessage 返回当前语言的消息
func (l lang) GetMessage() string {
	if lng == "zh_cn" && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}
