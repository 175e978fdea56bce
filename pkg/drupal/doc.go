// Package drupal assembles the task collections behind the drupalctl site
// commands: drush configuration, permissions, settings files, site
// installation with its hooks, and the PHP development server.
//
// Each command returns a *tasks.Collection built from the configuration
// Store; nothing is touched until the collection runs.
package drupal
