// Package app wires the engine together for a host: it locates and parses
// the settings file and constructs a dictionary with the right backend.
package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/ascens/ascens/dictfile"
	"github.com/ascens/ascens/dictionary"
)

// Dictionary file types accepted by the settings file.
const (
	TypeLine = "line"
	TypeXML  = "xml"
)

// Settings is the engine configuration.
type Settings struct {
	Dictionary DictionarySettings `yaml:"Dictionary"`
}

// DictionarySettings names the dictionary file and its format.
// A relative Path is resolved against the settings file's directory.
type DictionarySettings struct {
	Path  string `yaml:"Path"`
	Type  string `yaml:"Type"`
	XPath string `yaml:"XPath"`
}

// SettingsPath returns the default path to the settings file.
func SettingsPath() (string, error) {
	path := filepath.Join("ascens", "config.yaml")
	return xdg.ConfigFile(path)
}

// LoadSettings parses the settings file at path and resolves the dictionary
// path against the settings file's directory.
func LoadSettings(path string) (Settings, error) {
	log.Printf("Loading settings from %q\n", path)
	data, err := os.ReadFile(path)
	if err != nil {
		// Return the error directly so callers can use os.IsNotExist(err) to check if the file exists.
		return Settings{}, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if err := settings.Dictionary.Validate(); err != nil {
		return Settings{}, err
	}

	if !filepath.IsAbs(settings.Dictionary.Path) {
		baseDir := filepath.Dir(path)
		settings.Dictionary.Path = filepath.Join(baseDir, settings.Dictionary.Path)
	}
	return settings, nil
}

// Validate checks that the dictionary settings name a usable backend.
func (s DictionarySettings) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("dictionary settings: Path is required")
	}
	switch s.Type {
	case TypeLine, "":
	case TypeXML:
		if s.XPath == "" {
			return fmt.Errorf("dictionary settings: XPath is required when Type is %q", TypeXML)
		}
	default:
		return fmt.Errorf("dictionary settings: unknown Type %q", s.Type)
	}
	return nil
}

// OpenBackend constructs the backend the settings describe.
func (s DictionarySettings) OpenBackend() (dictionary.Backend, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Type == TypeXML {
		return dictfile.NewXMLFile(s.Path, s.XPath)
	}
	return dictfile.NewLineFile(s.Path)
}

// OpenDictionary constructs a dictionary bound to the configured backend.
func OpenDictionary(settings Settings) (*dictionary.Dictionary, error) {
	backend, err := settings.Dictionary.OpenBackend()
	if err != nil {
		return nil, err
	}
	dict := dictionary.New()
	dict.Load(backend)
	return dict, nil
}
