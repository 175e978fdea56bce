package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort             = "Set up and install Drupal sites from YAML configuration"
	MsgDrushSetupShort       = "Write drushrc.php and drush.yml from drupal.drush"
	MsgPermissionsSetupShort = "Make the site directory and settings.php writable"
	MsgSettingsSetupShort    = "Generate settings.php and the settings override file"
	MsgSiteInstallShort      = "Install a Drupal site"
	MsgSitePreInstallShort   = "Run the drupal.pre_install hooks"
	MsgSitePostInstallShort  = "Run the drupal.post_install hooks"
	MsgRunServerShort        = "Run the PHP built-in web server"
	MsgPHPShort              = "Write a configuration block into a PHP file"
	MsgPHPWriteShort         = "Replace the file with the block"
	MsgPHPPrependShort       = "Insert the block after the opening PHP tag"
	MsgPHPAppendShort        = "Add the block at the end of the file"
	MsgConfigShort           = "Inspect the resolved configuration"
	MsgConfigGetShort        = "Print a configuration value as YAML"
	MsgConfigOriginShort     = "List the layers that set a configuration value"
	MsgVersionShort          = "Print version information"
	MsgCompletionShort       = "Generate shell completion script"

	// Group titles
	MsgGroupDrupal = "DRUPAL:"
	MsgGroupTools  = "TOOLS:"

	// Global flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "List the tasks without running them"
	MsgFlagWorkingDir = "Run as if started in this directory"
	MsgFlagConfig     = "Extra configuration file, loaded after taskman.yml (repeatable)"
	MsgFlagFormat     = "Output format: auto, term, text or json"

	// Command flag descriptions
	MsgFlagRoot                 = "Drupal root (default: drupal.root)"
	MsgFlagDrushConfigDir       = "Directory receiving drush.yml (default: drupal.config_dir)"
	MsgFlagSitesSubdir          = "Site directory under sites/ (default: drupal.site.sites_subdir)"
	MsgFlagSettingsOverrideFile = "Override file name (default: drupal.site.settings_override_file)"
	MsgFlagForce                = "Regenerate settings.php even if it exists"
	MsgFlagSkipPermissions      = "Do not change site directory permissions"
	MsgFlagBaseURL              = "Server address (default: drupal.base_url)"
	MsgFlagBackground           = "Start the server in the background"
	MsgFlagSiteName             = "Site name"
	MsgFlagSiteMail             = "Site e-mail"
	MsgFlagSiteProfile          = "Installation profile"
	MsgFlagSiteUpdate           = "Keep the update status module enabled"
	MsgFlagSiteLocale           = "Default site locale"
	MsgFlagAccountName          = "Administrator account name"
	MsgFlagAccountPassword      = "Administrator account password"
	MsgFlagAccountMail          = "Administrator e-mail"
	MsgFlagDatabaseScheme       = "Database scheme, e.g. mysql or pgsql"
	MsgFlagDatabaseUser         = "Database user"
	MsgFlagDatabasePassword     = "Database password"
	MsgFlagDatabaseHost         = "Database host"
	MsgFlagDatabasePort         = "Database port"
	MsgFlagDatabaseName         = "Database name"
	MsgFlagSiteConfigDir        = "Deprecated, use --existing-config"
	MsgFlagExistingConfig       = "Install from existing configuration"
	MsgFlagFile                 = "PHP file to write"
	MsgFlagConfigKey            = "Configuration key holding the settings mapping"
	MsgFlagBlockStart           = "First line of the generated block"
	MsgFlagBlockEnd             = "Last line of the generated block"

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrWorkingDir = "cannot change to working directory %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/site-install-long.txt
	msgSiteInstallLongRaw string
	MsgSiteInstallLong    = strings.TrimSpace(msgSiteInstallLongRaw)

	//go:embed msgs/site-install-example.txt
	msgSiteInstallExampleRaw string
	MsgSiteInstallExample    = strings.TrimRight(msgSiteInstallExampleRaw, "\n")

	//go:embed msgs/php-long.txt
	msgPHPLongRaw string
	MsgPHPLong    = strings.TrimSpace(msgPHPLongRaw)

	//go:embed msgs/php-example.txt
	msgPHPExampleRaw string
	MsgPHPExample    = strings.TrimRight(msgPHPExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
