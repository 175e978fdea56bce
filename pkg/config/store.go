package config

import (
	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/ordered"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Store holds the resolved configuration of one invocation.
type Store struct {
	tree   *ordered.Map
	cfg    *Config
	layers []layer
}

// NewStore builds the koanf view and the typed Config from a resolved tree.
func NewStore(tree *ordered.Map) (*Store, error) {
	k := koanf.New(".")
	// An empty delimiter keeps dotted keys such as "system.logging" intact.
	if err := k.Load(confmap.Provider(tree.ToPlain(), ""), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load configuration tree")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to decode configuration")
	}

	return &Store{tree: tree, cfg: &cfg}, nil
}

// Tree returns the ordered configuration tree.
func (s *Store) Tree() *ordered.Map {
	return s.tree
}

// Origins returns the layers that set key or a value below it, in load
// order. For a scalar the last one wins. Stores built with NewStore have no
// layers.
func (s *Store) Origins(key string) ([]string, error) {
	if _, ok := s.tree.Lookup(key); !ok {
		return nil, errors.Newf(errors.ErrConfigMissing, "configuration key %s not found on current configuration", key).
			WithDetail("key", key)
	}
	var origins []string
	for _, l := range s.layers {
		if l.k.Exists(key) {
			origins = append(origins, l.name)
		}
	}
	return origins, nil
}

// Config returns the typed configuration.
func (s *Store) Config() *Config {
	return s.cfg
}

// Get returns the value at a dotted key.
func (s *Store) Get(key string) (any, bool) {
	return s.tree.Lookup(key)
}

// Expand resolves ${a.b} tokens in text against the configuration.
func (s *Store) Expand(text string) string {
	return ExpandString(s.tree, text)
}

// YAML renders the value at key as YAML, keeping key order.
func (s *Store) YAML(key string) (string, error) {
	v, ok := s.tree.Lookup(key)
	if !ok {
		return "", errors.Newf(errors.ErrConfigMissing, "configuration key %s not found on current configuration", key).
			WithDetail("key", key)
	}
	return MarshalYAML(v)
}

// MarshalYAML renders a tree value as YAML.
func MarshalYAML(v any) (string, error) {
	out, err := yamlv3.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as YAML")
	}
	return string(out), nil
}
