package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header string
		value  string
		want   string
	}{
		{"", "", LocaleEN},
		{"Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8", LocaleZH},
		{"Accept-Language", "fr-FR, zh-Hant;q=0.7", LocaleTW},
		{"Accept-Language", "fr-FR", LocaleEN},
		{localeHeader, "zh_tw", LocaleTW},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			c.Request.Header.Set(tc.header, tc.value)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("%s=%q want %s got %s", tc.header, tc.value, tc.want, got)
		}
	}
}

func TestTranslateFallsBack(t *testing.T) {
	if got := T(LocaleTW, "error.product_in_use"); got != "Cannot delete product because it exists in past orders." {
		t.Fatalf("missing zh-TW key should fall back to English, got %s", got)
	}
	if got := T(LocaleZH, "no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown key should be returned as-is, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.out_of_stock", "Pad", 3); got != "Insufficient stock for Pad. Available: 3" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestLocaleTablesShareKeys(t *testing.T) {
	for key := range messages[LocaleZH] {
		if _, ok := messages[LocaleEN][key]; !ok {
			t.Fatalf("key %s missing in %s", key, LocaleEN)
		}
	}
	for key := range messages[LocaleEN] {
		if _, ok := messages[LocaleZH][key]; !ok {
			t.Fatalf("key %s missing in %s", key, LocaleZH)
		}
	}
}
