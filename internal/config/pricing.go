package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingDefaults holds the system default rate tables and their display
// labels. Accounts without a custom table price against these values.
type PricingDefaults struct {
	Tables map[string]map[string]float64 `mapstructure:"tables"`
	Labels map[string]map[string]string  `mapstructure:"labels"`
}

// DefaultPricingDefaults returns the rate tables shipped with the product.
// Prices are MXN.
func DefaultPricingDefaults() PricingDefaults {
	return PricingDefaults{
		Tables: map[string]map[string]float64{
			"identidad": {
				"logotipo":           8000,
				"identidad-completa": 15000,
				"rediseno":           6000,
				"manual-marca":       7000,
			},
			"ilustracion": {
				"personaje": 3500,
				"mascota":   5000,
				"editorial": 2500,
				"patron":    2000,
			},
			"editorial": {
				"revista":  9000,
				"libro":    12000,
				"catalogo": 7500,
				"folleto":  3000,
			},
			"web": {
				"landing":        10000,
				"sitio-completo": 25000,
				"banner":         1200,
				"ui-kit":         18000,
			},
			"social": {
				"post":         800,
				"pack-mensual": 6000,
				"portada":      1500,
				"plantillas":   4500,
			},
			"impresos": {
				"tarjeta": 1500,
				"poster":  2500,
				"flyer":   1800,
				"empaque": 8500,
			},
		},
		Labels: map[string]map[string]string{
			"identidad": {
				"logotipo":           "Logotipo",
				"identidad-completa": "Identidad corporativa completa",
				"rediseno":           "Rediseño de marca",
				"manual-marca":       "Manual de marca",
			},
			"ilustracion": {
				"personaje": "Diseño de personaje",
				"mascota":   "Mascota de marca",
				"editorial": "Ilustración editorial",
				"patron":    "Patrón / estampado",
			},
			"editorial": {
				"revista":  "Diseño de revista",
				"libro":    "Diseño de libro",
				"catalogo": "Catálogo",
				"folleto":  "Folleto",
			},
			"web": {
				"landing":        "Landing page",
				"sitio-completo": "Sitio web completo",
				"banner":         "Banner digital",
				"ui-kit":         "UI kit",
			},
			"social": {
				"post":         "Post para redes",
				"pack-mensual": "Pack mensual de contenidos",
				"portada":      "Portada / cover",
				"plantillas":   "Plantillas editables",
			},
			"impresos": {
				"tarjeta": "Tarjeta de presentación",
				"poster":  "Póster",
				"flyer":   "Flyer",
				"empaque": "Diseño de empaque",
			},
		},
	}
}

// PricingDefaultsHolder exposes the current defaults and hot-reloads them
// when a pricing.yml override is present.
type PricingDefaultsHolder struct {
	current atomic.Value // holds PricingDefaults
}

func NewPricingDefaultsHolder() (*PricingDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/cotiza/config")
	v.AddConfigPath("/etc/cotiza")
	v.AddConfigPath(".")

	v.SetEnvPrefix("COTIZA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &PricingDefaultsHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultPricingDefaults())
		return holder, nil
	}

	var cfg PricingDefaults
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingDefaults(cfg); err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingDefaults
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingDefaults(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticPricingDefaultsHolder pins the holder to the given defaults with no
// file watching. Intended for tests and one-shot tools.
func StaticPricingDefaultsHolder(defaults PricingDefaults) *PricingDefaultsHolder {
	holder := &PricingDefaultsHolder{}
	holder.current.Store(defaults)
	return holder
}

func (h *PricingDefaultsHolder) Get() PricingDefaults {
	return h.current.Load().(PricingDefaults)
}

func validatePricingDefaults(cfg PricingDefaults) error {
	if len(cfg.Tables) == 0 {
		return errors.New("pricing.tables cannot be empty")
	}
	for category, services := range cfg.Tables {
		for service, price := range services {
			if price < 0 {
				return errors.New("pricing.tables." + category + "." + service + " cannot be negative")
			}
		}
	}
	return nil
}
