package i18n

import (
	"fmt"
	"strings"

	"github.com/stationery-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"
)

// DefaultLocale 未指定时使用英文，与店面原始文案一致
const DefaultLocale = LocaleEN

const localeHeader = "X-Locale"

// NormalizeLocale 归一化语言标识，无法识别时返回空串
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "_", "-")
	switch {
	case value == "zh-tw" || value == "zh-hk" || value == "zh-hant" || strings.HasPrefix(value, "zh-hant"):
		return LocaleTW
	case strings.HasPrefix(value, "zh"):
		return LocaleZH
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	}
	return ""
}

// ResolveLocale 依次读取上下文、X-Locale 与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if value, ok := c.Get(constants.ContextKeyLocale); ok {
		if locale, ok := value.(string); ok {
			if normalized := NormalizeLocale(locale); normalized != "" {
				return normalized
			}
		}
	}
	if normalized := NormalizeLocale(c.GetHeader(localeHeader)); normalized != "" {
		return normalized
	}
	for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if normalized := NormalizeLocale(tag); normalized != "" {
			return normalized
		}
	}
	return DefaultLocale
}

// T 翻译 key，找不到时回退英文，再回退 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按参数格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		normalized = DefaultLocale
	}
	table, ok := messages[normalized]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
