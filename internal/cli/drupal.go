package cli

import (
	"github.com/arthur-debert/drupalctl/pkg/drupal"
	"github.com/spf13/cobra"
)

func newDrushSetupCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "drush-setup",
		Short:   MsgDrushSetupShort,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, true)
			if err != nil {
				return err
			}

			o := drupal.DrushSetupDefaults(e.store.Config())
			stringFlag(cmd, "root", &o.Root)
			stringFlag(cmd, "config-dir", &o.ConfigDir)

			collection, err := e.drupal().DrushSetup(o)
			if err != nil {
				return err
			}
			return e.run(collection)
		},
	}

	cmd.Flags().String("root", "", MsgFlagRoot)
	cmd.Flags().String("config-dir", "", MsgFlagDrushConfigDir)
	return cmd
}

func newPermissionsSetupCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "permissions-setup",
		Short:   MsgPermissionsSetupShort,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, true)
			if err != nil {
				return err
			}

			o := drupal.PermissionsSetupDefaults(e.store.Config())
			stringFlag(cmd, "root", &o.Root)
			stringFlag(cmd, "sites-subdir", &o.SitesSubdir)

			return e.run(e.drupal().PermissionsSetup(o))
		},
	}

	cmd.Flags().String("root", "", MsgFlagRoot)
	cmd.Flags().String("sites-subdir", "", MsgFlagSitesSubdir)
	return cmd
}

func newSettingsSetupCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings-setup",
		Short:   MsgSettingsSetupShort,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, true)
			if err != nil {
				return err
			}

			o := drupal.SettingsSetupDefaults(e.store.Config())
			stringFlag(cmd, "root", &o.Root)
			stringFlag(cmd, "sites-subdir", &o.SitesSubdir)
			stringFlag(cmd, "settings-override-file", &o.SettingsOverrideFile)
			boolFlag(cmd, "force", &o.Force)
			boolFlag(cmd, "skip-permissions-setup", &o.SkipPermissionsSetup)

			return e.run(e.drupal().SettingsSetup(o))
		},
	}

	f := cmd.Flags()
	f.String("root", "", MsgFlagRoot)
	f.String("sites-subdir", "", MsgFlagSitesSubdir)
	f.String("settings-override-file", "", MsgFlagSettingsOverrideFile)
	f.Bool("force", false, MsgFlagForce)
	f.Bool("skip-permissions-setup", false, MsgFlagSkipPermissions)
	return cmd
}

func newSiteInstallCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "site-install",
		Aliases: []string{"si", "dsi"},
		Short:   MsgSiteInstallShort,
		Long:    MsgSiteInstallLong,
		Example: MsgSiteInstallExample,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, true)
			if err != nil {
				return err
			}

			o := drupal.SiteInstallDefaults(e.store.Config())
			for name, target := range map[string]*string{
				"root":              &o.Root,
				"sites-subdir":      &o.SitesSubdir,
				"site-name":         &o.SiteName,
				"site-mail":         &o.SiteMail,
				"site-profile":      &o.SiteProfile,
				"site-locale":       &o.SiteLocale,
				"account-name":      &o.AccountName,
				"account-password":  &o.AccountPassword,
				"account-mail":      &o.AccountMail,
				"database-scheme":   &o.DatabaseScheme,
				"database-user":     &o.DatabaseUser,
				"database-password": &o.DatabasePassword,
				"database-host":     &o.DatabaseHost,
				"database-port":     &o.DatabasePort,
				"database-name":     &o.DatabaseName,
				"config-dir":        &o.ConfigDir,
			} {
				stringFlag(cmd, name, target)
			}
			boolFlag(cmd, "site-update", &o.SiteUpdate)
			boolFlag(cmd, "existing-config", &o.ExistingConfig)
			boolFlag(cmd, "skip-permissions-setup", &o.SkipPermissionsSetup)

			collection, err := e.drupal().SiteInstall(o)
			if err != nil {
				return err
			}
			return e.run(collection)
		},
	}

	f := cmd.Flags()
	f.String("root", "", MsgFlagRoot)
	f.String("sites-subdir", "", MsgFlagSitesSubdir)
	f.String("site-name", "", MsgFlagSiteName)
	f.String("site-mail", "", MsgFlagSiteMail)
	f.String("site-profile", "", MsgFlagSiteProfile)
	f.Bool("site-update", false, MsgFlagSiteUpdate)
	f.String("site-locale", "", MsgFlagSiteLocale)
	f.String("account-name", "", MsgFlagAccountName)
	f.String("account-password", "", MsgFlagAccountPassword)
	f.String("account-mail", "", MsgFlagAccountMail)
	f.String("database-scheme", "", MsgFlagDatabaseScheme)
	f.String("database-user", "", MsgFlagDatabaseUser)
	f.String("database-password", "", MsgFlagDatabasePassword)
	f.String("database-host", "", MsgFlagDatabaseHost)
	f.String("database-port", "", MsgFlagDatabasePort)
	f.String("database-name", "", MsgFlagDatabaseName)
	f.String("config-dir", "", MsgFlagSiteConfigDir)
	f.Bool("existing-config", false, MsgFlagExistingConfig)
	f.Bool("skip-permissions-setup", false, MsgFlagSkipPermissions)
	return cmd
}

func newSitePreInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "site-pre-install",
		Short:   MsgSitePreInstallShort,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, false)
			if err != nil {
				return err
			}
			collection, err := e.drupal().PreInstall()
			if err != nil {
				return err
			}
			return e.run(collection)
		},
	}
}

func newSitePostInstallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "site-post-install",
		Short:   MsgSitePostInstallShort,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, false)
			if err != nil {
				return err
			}
			collection, err := e.drupal().PostInstall()
			if err != nil {
				return err
			}
			return e.run(collection)
		},
	}
}

func newRunServerCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run-server",
		Aliases: []string{"rs"},
		Short:   MsgRunServerShort,
		GroupID: "drupal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, true)
			if err != nil {
				return err
			}

			o := drupal.RunServerDefaults(e.store.Config())
			stringFlag(cmd, "root", &o.Root)
			stringFlag(cmd, "base-url", &o.BaseURL)
			boolFlag(cmd, "background", &o.Background)

			collection, err := e.drupal().RunServer(o)
			if err != nil {
				return err
			}
			return e.run(collection)
		},
	}

	cmd.Flags().String("root", "", MsgFlagRoot)
	cmd.Flags().String("base-url", "", MsgFlagBaseURL)
	cmd.Flags().Bool("background", false, MsgFlagBackground)
	return cmd
}
