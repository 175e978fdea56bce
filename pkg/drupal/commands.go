package drupal

import (
	"io"
	"net"
	"net/url"
	"path/filepath"

	"github.com/arthur-debert/drupalctl/pkg/config"
	"github.com/arthur-debert/drupalctl/pkg/drush"
	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/filesystem"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/phpblock"
	"github.com/arthur-debert/drupalctl/pkg/tasks"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// Configuration keys read by the commands.
const (
	KeyDrush       = "drupal.drush"
	KeySettings    = "drupal.settings"
	KeyPreInstall  = "drupal.pre_install"
	KeyPostInstall = "drupal.post_install"
)

// Commands builds task collections for the Drupal site commands.
type Commands struct {
	FS     types.FS
	Store  *config.Store
	Runner tasks.CommandRunner
	Locker *tasks.PathLocker

	// Stdout and Stderr receive hook and process output.
	Stdout io.Writer
	Stderr io.Writer

	// Warn reports deprecations. Defaults to a log warning.
	Warn func(msg string)
}

func (c *Commands) fs() types.FS {
	if c.FS == nil {
		return filesystem.NewOS()
	}
	return c.FS
}

func (c *Commands) warn(msg string) {
	if c.Warn != nil {
		c.Warn(msg)
		return
	}
	logging.GetLogger("drupal").Warn().Msg(msg)
}

func (c *Commands) factory() *tasks.Factory {
	return &tasks.Factory{
		FS:     c.FS,
		Source: c.Store,
		Locker: c.Locker,
		Stdout: c.Stdout,
		Stderr: c.Stderr,
	}
}

func siteDir(root, sitesSubdir string) string {
	return filepath.Join(root, "sites", sitesSubdir)
}

// DrushSetupOptions configures DrushSetup
type DrushSetupOptions struct {
	Root      string
	ConfigDir string
}

// DrushSetup writes drupal.drush as drushrc.php (Drush 8) and drush.yml (Drush 9+).
func (c *Commands) DrushSetup(opts DrushSetupOptions) (*tasks.Collection, error) {
	text, err := c.Store.YAML(KeyDrush)
	if err != nil {
		return nil, err
	}

	return tasks.NewCollection("drush-setup",
		&tasks.WritePHP{
			FS:        c.FS,
			Path:      filepath.Join(opts.Root, "sites", "default", "drushrc.php"),
			Source:    c.Store.Tree(),
			ConfigKey: KeyDrush,
			Labels:    phpblock.DefaultLabels(),
			Mode:      phpblock.ModeWrite,
			Locker:    c.Locker,
		},
		&tasks.WriteFile{
			FS:   c.FS,
			Path: filepath.Join(opts.ConfigDir, "drush.yml"),
			Text: text,
		},
	), nil
}

// PermissionsSetupOptions configures PermissionsSetup
type PermissionsSetupOptions struct {
	Root        string
	SitesSubdir string
}

// PermissionsSetup makes the site directory writable (0775, recursively) and
// settings.php, when it already exists, group writable (0664).
func (c *Commands) PermissionsSetup(opts PermissionsSetupOptions) *tasks.Collection {
	dir := siteDir(opts.Root, opts.SitesSubdir)
	collection := tasks.NewCollection("permissions-setup",
		&tasks.Chmod{FS: c.FS, Path: dir, Mode: 0775, Recursive: true},
	)

	settings := filepath.Join(dir, "settings.php")
	if filesystem.Exists(c.fs(), settings) {
		collection.Add(&tasks.Chmod{FS: c.FS, Path: settings, Mode: 0664})
	}
	return collection
}

// SettingsSetupOptions configures SettingsSetup
type SettingsSetupOptions struct {
	Root                 string
	SitesSubdir          string
	SettingsOverrideFile string
	Force                bool
	SkipPermissionsSetup bool
}

// SettingsSetup prepares settings.php to include the override file and writes
// drupal.settings into that file. settings.php is regenerated from
// default.settings.php only when missing or when Force is set.
func (c *Commands) SettingsSetup(opts SettingsSetupOptions) *tasks.Collection {
	dir := siteDir(opts.Root, opts.SitesSubdir)
	defaultSettings := filepath.Join(dir, "default.settings.php")
	settings := filepath.Join(dir, "settings.php")
	override := filepath.Join(dir, opts.SettingsOverrideFile)

	collection := tasks.NewCollection("settings-setup")

	if opts.Force || !filesystem.Exists(c.fs(), settings) {
		collection.Add(
			&tasks.WriteFile{
				FS:     c.FS,
				Path:   defaultSettings,
				Lines:  []string{SettingsAddendum(c.Store.Config().Drupal.Core, opts.SettingsOverrideFile)},
				Append: true,
			},
			&tasks.Copy{FS: c.FS, From: defaultSettings, To: settings, Overwrite: true},
		)
	}

	collection.Add(&tasks.WritePHP{
		FS:        c.FS,
		Path:      override,
		Source:    c.Store.Tree(),
		ConfigKey: KeySettings,
		Labels:    phpblock.DefaultLabels(),
		Mode:      phpblock.ModeWrite,
		Locker:    c.Locker,
	})

	if !opts.SkipPermissionsSetup {
		collection.Add(c.PermissionsSetup(PermissionsSetupOptions{Root: opts.Root, SitesSubdir: opts.SitesSubdir}))
	}
	return collection
}

// SiteInstallOptions configures SiteInstall
type SiteInstallOptions struct {
	Root        string
	SitesSubdir string

	SiteName    string
	SiteMail    string
	SiteProfile string
	SiteUpdate  bool
	SiteLocale  string

	AccountName     string
	AccountPassword string
	AccountMail     string

	DatabaseScheme   string
	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string

	// Deprecated: ConfigDir only turns on ExistingConfig.
	ConfigDir            string
	ExistingConfig       bool
	SkipPermissionsSetup bool
}

// ValidateSiteInstall checks that, when permissions are not going to be set
// up, the site directory and settings.php are writable if they exist.
func (c *Commands) ValidateSiteInstall(opts SiteInstallOptions) error {
	if !opts.SkipPermissionsSetup {
		return nil
	}

	dir := siteDir(opts.Root, opts.SitesSubdir)
	for _, path := range []string{dir, filepath.Join(dir, "settings.php")} {
		writable, err := c.fs().Writable(path)
		if err != nil {
			// Missing files are created by the installer.
			continue
		}
		if !writable {
			return errors.Newf(errors.ErrNotWritable,
				"the file/folder %s must be writable for installation to continue", path).
				WithDetail("path", path)
		}
	}
	return nil
}

// SiteInstall runs the pre-install hooks, permissions setup, drush
// site-install and the post-install hooks, in that order.
func (c *Commands) SiteInstall(opts SiteInstallOptions) (*tasks.Collection, error) {
	if opts.ConfigDir != "" {
		c.warn("The 'config-dir' option is deprecated. Use 'existing-config' instead.")
		opts.ExistingConfig = true
	}

	if err := c.ValidateSiteInstall(opts); err != nil {
		return nil, err
	}

	pre, err := c.PreInstall()
	if err != nil {
		return nil, err
	}
	post, err := c.PostInstall()
	if err != nil {
		return nil, err
	}

	install := drush.SiteInstall(drush.SiteInstallOptions{
		BinDir:          c.Store.Config().Options.BinDir,
		Root:            opts.Root,
		Profile:         opts.SiteProfile,
		SiteName:        opts.SiteName,
		SiteMail:        opts.SiteMail,
		Locale:          opts.SiteLocale,
		AccountName:     opts.AccountName,
		AccountPassword: opts.AccountPassword,
		AccountMail:     opts.AccountMail,
		DBURL: drush.DBURL(opts.DatabaseScheme, opts.DatabaseUser, opts.DatabasePassword,
			opts.DatabaseHost, opts.DatabasePort, opts.DatabaseName),
		SitesSubdir:    opts.SitesSubdir,
		Update:         opts.SiteUpdate,
		ExistingConfig: opts.ExistingConfig,
	})
	install.Stdout, install.Stderr = c.Stdout, c.Stderr

	collection := tasks.NewCollection("site-install", pre)
	if !opts.SkipPermissionsSetup {
		collection.Add(c.PermissionsSetup(PermissionsSetupOptions{Root: opts.Root, SitesSubdir: opts.SitesSubdir}))
	}
	collection.Add(&tasks.Exec{Runner: c.Runner, Command: install}, post)
	return collection, nil
}

// PreInstall builds the drupal.pre_install hooks.
func (c *Commands) PreInstall() (*tasks.Collection, error) {
	hooks, _ := c.Store.Get(KeyPreInstall)
	return c.factory().Collection("site-pre-install", hooks)
}

// PostInstall builds the drupal.post_install hooks.
func (c *Commands) PostInstall() (*tasks.Collection, error) {
	hooks, _ := c.Store.Get(KeyPostInstall)
	return c.factory().Collection("site-post-install", hooks)
}

// RunServerOptions configures RunServer
type RunServerOptions struct {
	Root       string
	BaseURL    string
	Background bool
}

// RunServer starts the PHP built-in web server on the host and port of
// BaseURL (port 80 when absent), serving Root.
func (c *Commands) RunServer(opts RunServerOptions) (*tasks.Collection, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Hostname() == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid base URL %q", opts.BaseURL).
			WithDetail("base_url", opts.BaseURL)
	}
	port := u.Port()
	if port == "" {
		port = "80"
	}

	return tasks.NewCollection("run-server", &tasks.Exec{
		Runner: c.Runner,
		Command: tasks.Command{
			Name:       "php",
			Args:       []string{"-S", net.JoinHostPort(u.Hostname(), port), "-t", opts.Root, "-dalways_populate_raw_post_data=-1"},
			Background: opts.Background,
			Stdout:     c.Stdout,
			Stderr:     c.Stderr,
		},
	}), nil
}
