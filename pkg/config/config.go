package config

import (
	"github.com/arthur-debert/drupalctl/pkg/errors"
)

// Config is the typed view of the configuration keys drupalctl reads itself.
// Keys used for generation (drupal.settings, drupal.drush, hooks) are read
// from the ordered tree instead.
type Config struct {
	Options Options `koanf:"options"`
	Drupal  Drupal  `koanf:"drupal"`
}

// Options holds tool-level options
type Options struct {
	BinDir string `koanf:"bin_dir"`
}

// Drupal holds the site definition
type Drupal struct {
	Root         string `koanf:"root"`
	RootAbsolute string `koanf:"root_absolute"`
	Core         int    `koanf:"core"`
	BaseURL      string `koanf:"base_url"`

	// ConfigDir is where drush-setup writes drush.yml
	ConfigDir string `koanf:"config_dir"`

	Site     Site     `koanf:"site"`
	Account  Account  `koanf:"account"`
	Database Database `koanf:"database"`
}

// Site holds site-install options
type Site struct {
	Name                 string `koanf:"name"`
	Mail                 string `koanf:"mail"`
	Profile              string `koanf:"profile"`
	Update               bool   `koanf:"update"`
	Locale               string `koanf:"locale"`
	SitesSubdir          string `koanf:"sites_subdir"`
	ExistingConfig       bool   `koanf:"existing_config"`
	SkipPermissionsSetup bool   `koanf:"skip_permissions_setup"`
	SettingsOverrideFile string `koanf:"settings_override_file"`

	// Deprecated: use ExistingConfig.
	ConfigDir string `koanf:"config_dir"`
}

// Account holds the administrator account
type Account struct {
	Name     string `koanf:"name"`
	Password string `koanf:"password"`
	Mail     string `koanf:"mail"`
}

// Database holds the connection used by site-install
type Database struct {
	Scheme   string `koanf:"scheme"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Name     string `koanf:"name"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

// Validate checks the values every command relies on.
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"drupal.root", c.Drupal.Root},
		{"drupal.site.sites_subdir", c.Drupal.Site.SitesSubdir},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.Newf(errors.ErrConfigInvalid, "configuration key %s must not be empty", r.key).
				WithDetail("key", r.key)
		}
	}
	if c.Drupal.Core < 7 {
		return errors.Newf(errors.ErrConfigInvalid, "unsupported Drupal core version %d", c.Drupal.Core).
			WithDetail("key", "drupal.core")
	}
	return nil
}
