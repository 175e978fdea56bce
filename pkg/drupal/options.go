package drupal

import "github.com/arthur-debert/drupalctl/pkg/config"

// Option defaults come from configuration; command flags override them.

// DrushSetupDefaults reads drupal.root and drupal.config_dir.
func DrushSetupDefaults(cfg *config.Config) DrushSetupOptions {
	return DrushSetupOptions{Root: cfg.Drupal.Root, ConfigDir: cfg.Drupal.ConfigDir}
}

func PermissionsSetupDefaults(cfg *config.Config) PermissionsSetupOptions {
	return PermissionsSetupOptions{Root: cfg.Drupal.Root, SitesSubdir: cfg.Drupal.Site.SitesSubdir}
}

func SettingsSetupDefaults(cfg *config.Config) SettingsSetupOptions {
	return SettingsSetupOptions{
		Root:                 cfg.Drupal.Root,
		SitesSubdir:          cfg.Drupal.Site.SitesSubdir,
		SettingsOverrideFile: cfg.Drupal.Site.SettingsOverrideFile,
		SkipPermissionsSetup: cfg.Drupal.Site.SkipPermissionsSetup,
	}
}

// SiteInstallDefaults reads the drupal.site, drupal.account and drupal.database sections.
func SiteInstallDefaults(cfg *config.Config) SiteInstallOptions {
	d := cfg.Drupal
	return SiteInstallOptions{
		Root:                 d.Root,
		SitesSubdir:          d.Site.SitesSubdir,
		SiteName:             d.Site.Name,
		SiteMail:             d.Site.Mail,
		SiteProfile:          d.Site.Profile,
		SiteUpdate:           d.Site.Update,
		SiteLocale:           d.Site.Locale,
		AccountName:          d.Account.Name,
		AccountPassword:      d.Account.Password,
		AccountMail:          d.Account.Mail,
		DatabaseScheme:       d.Database.Scheme,
		DatabaseUser:         d.Database.User,
		DatabasePassword:     d.Database.Password,
		DatabaseHost:         d.Database.Host,
		DatabasePort:         d.Database.Port,
		DatabaseName:         d.Database.Name,
		ConfigDir:            d.Site.ConfigDir,
		ExistingConfig:       d.Site.ExistingConfig,
		SkipPermissionsSetup: d.Site.SkipPermissionsSetup,
	}
}

func RunServerDefaults(cfg *config.Config) RunServerOptions {
	return RunServerOptions{Root: cfg.Drupal.Root, BaseURL: cfg.Drupal.BaseURL}
}
