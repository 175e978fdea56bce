// Package config loads drupalctl configuration.
//
// Configuration is layered: embedded defaults, then taskman.yml.dist and
// taskman.yml from the working directory, then any extra files, then
// DRUPALCTL_* environment variables. Later layers win key by key.
//
// Two views are kept in sync. The ordered tree (pkg/ordered) preserves key
// order and feeds PHP and YAML generation; the koanf view is decoded into the
// typed Config used for command options. String values may reference other
// keys with ${a.b.c} tokens, which are resolved once all layers are merged
// and drupal.root_absolute has been computed.
//
// Each layer is also kept in its own koanf instance so Store.Origins can
// report which layers set a key.
package config
