package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultsEnableAutoHide(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if !cfg.Catalog.AutoHideOutOfStock {
		t.Fatalf("auto hide should default to true")
	}
	if cfg.Catalog.DefaultLowStockThreshold != 10 {
		t.Fatalf("default threshold want 10 got %d", cfg.Catalog.DefaultLowStockThreshold)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("default driver want sqlite got %s", cfg.Database.Driver)
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	raw := `
catalog:
  auto_hide_out_of_stock: false
  default_low_stock_threshold: -3
redis:
  enabled: true
  prefix: shop
`
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("read config failed: %v", err)
	}

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Catalog.AutoHideOutOfStock {
		t.Fatalf("auto hide should be overridden to false")
	}
	if cfg.Catalog.DefaultLowStockThreshold != 0 {
		t.Fatalf("negative threshold should clamp to 0, got %d", cfg.Catalog.DefaultLowStockThreshold)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Prefix != "shop" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Log.ToLoggerOptions().Filename != "app.log" {
		t.Fatalf("logger options should carry filename")
	}
}
