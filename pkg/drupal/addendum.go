package drupal

import "fmt"

// SettingsAddendum returns the PHP appended to default.settings.php so that
// settings.php includes the generated override file. Drupal 7 resolves the
// site directory with conf_path(); later versions use $app_root/$site_path.
func SettingsAddendum(core int, overrideFile string) string {
	base := "$app_root . '/' . $site_path"
	if core == 7 {
		base = "DRUPAL_ROOT . '/' . conf_path()"
	}
	path := fmt.Sprintf("%s . '/%s'", base, overrideFile)
	return fmt.Sprintf("\nif (file_exists(%s)) {\n  include %s;\n}", path, path)
}
