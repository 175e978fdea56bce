package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates path segments: DRUPALCTL_DRUPAL__SITE__NAME sets drupal.site.name.
const EnvPrefix = "DRUPALCTL_"

// Project configuration file names, loaded in this order.
var ProjectFiles = []string{"taskman.yml.dist", "taskman.yml"}

// LoadOptions controls where configuration layers are read from
type LoadOptions struct {
	// WorkingDir holds the project files and anchors drupal.root. Defaults to ".".
	WorkingDir string

	// Files are extra layers loaded after the project files. They must exist.
	Files []string

	// SkipEnv disables environment overrides.
	SkipEnv bool
}

// Layer names that are not file paths.
const (
	LayerDefaults = "defaults"
	LayerEnv      = "env"
	LayerRuntime  = "runtime"
)

// layer is one configuration source, kept in a koanf instance so the origin
// of a value can be looked up after the layers are merged.
type layer struct {
	name string
	k    *koanf.Koanf
}

// Load reads every layer, resolves tokens and returns the resulting Store.
func Load(opts LoadOptions) (*Store, error) {
	logger := logging.GetLogger("config")

	workingDir := opts.WorkingDir
	if workingDir == "" {
		workingDir = "."
	}

	tree := ordered.New()
	var layers []layer

	defaults, err := mergeLayer(tree, LayerDefaults, defaultConfig)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}
	layers = append(layers, defaults)

	paths := make([]string, 0, len(ProjectFiles)+len(opts.Files))
	for _, name := range ProjectFiles {
		path := filepath.Join(workingDir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path).
				WithDetail("path", path)
		}
		paths = append(paths, path)
	}
	for _, path := range opts.Files {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "configuration file %s cannot be read", path).
				WithDetail("path", path)
		}
		paths = append(paths, path)
	}

	for _, path := range paths {
		l, err := mergeFile(tree, path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
		logger.Debug().Str("path", path).Int("keys", len(l.k.Keys())).Msg("Loaded configuration file")
	}

	if !opts.SkipEnv {
		l, err := mergeEnv(tree)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}

	// root_absolute must exist before interpolation so other values can
	// reference it.
	if l, ok := setRuntimeValues(tree, workingDir); ok {
		layers = append(layers, l)
	}
	Interpolate(tree)

	store, err := NewStore(tree)
	if err != nil {
		return nil, err
	}
	store.layers = layers
	return store, nil
}

// mergeFile reads one YAML layer and merges it into tree.
func mergeFile(tree *ordered.Map, path string) (layer, error) {
	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return layer{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read configuration file %s", path).
			WithDetail("path", path)
	}
	l, err := mergeLayer(tree, path, data)
	if err != nil {
		return layer{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid YAML in %s", path).
			WithDetail("path", path)
	}
	return l, nil
}

// mergeLayer decodes data twice: koanf's YAML parser feeds the layer's own
// koanf instance, and the ordered decoder keeps key order for the merged
// tree.
func mergeLayer(tree *ordered.Map, name string, data []byte) (layer, error) {
	values, err := yaml.Parser().Unmarshal(data)
	if err != nil {
		return layer{}, err
	}
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(values, ""), nil); err != nil {
		return layer{}, err
	}

	parsed, err := ordered.FromYAML(data)
	if err != nil {
		return layer{}, err
	}
	tree.Merge(parsed)
	return layer{name: name, k: k}, nil
}

// mergeEnv applies DRUPALCTL_* variables. Values are parsed as YAML scalars
// so DRUPALCTL_DRUPAL__CORE=7 stays an integer.
func mergeEnv(tree *ordered.Map) (layer, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return layer{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	for _, key := range k.Keys() {
		raw := k.String(key)
		var node yamlv3.Node
		var value any = raw
		if err := yamlv3.Unmarshal([]byte(raw), &node); err == nil && len(node.Content) == 1 &&
			node.Content[0].Kind == yamlv3.ScalarNode {
			if v, err := ordered.FromNode(node.Content[0]); err == nil {
				value = v
			}
		}
		tree.SetPath(key, value)
	}
	return layer{name: LayerEnv, k: k}, nil
}

// setRuntimeValues records drupal.root_absolute when the root exists. The
// root itself may hold tokens, so it is expanded first.
func setRuntimeValues(tree *ordered.Map, workingDir string) (layer, bool) {
	raw, ok := tree.Lookup("drupal.root")
	if !ok {
		return layer{}, false
	}
	root, ok := raw.(string)
	if !ok || root == "" {
		return layer{}, false
	}
	root = ExpandString(tree, root)
	if !filepath.IsAbs(root) {
		root = filepath.Join(workingDir, root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return layer{}, false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return layer{}, false
	}

	tree.SetPath("drupal.root_absolute", resolved)
	k := koanf.New(".")
	_ = k.Set("drupal.root_absolute", resolved)
	return layer{name: LayerRuntime, k: k}, true
}
