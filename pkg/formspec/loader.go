package formspec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

//go:embed flows.yaml
var embeddedFlows []byte

// Default parses the embedded flow definitions.
func Default() (*Store, error) {
	return Load(embeddedFlows, "flows.yaml")
}

// MustDefault is Default for package initialisation; it panics on error.
func MustDefault() *Store {
	store, err := Default()
	if err != nil {
		panic(err)
	}
	return store
}

// LoadFS walks fsys and merges every JSON/YAML flow document it finds. Flows
// may not be defined twice.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{flows: make(map[model.FlowKind]Flow)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFlowFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		loaded, err := Load(data, path)
		if err != nil {
			return err
		}
		for kind, flow := range loaded.flows {
			if _, exists := store.flows[kind]; exists {
				return fmt.Errorf("formspec: duplicate flow %q (file %s)", kind, path)
			}
			store.flows[kind] = flow
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Load parses a single JSON or YAML document.
func Load(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	store := &Store{flows: make(map[model.FlowKind]Flow, len(doc.Flows))}
	for name, raw := range doc.Flows {
		kind := model.FlowKind(strings.TrimSpace(name))
		if kind != model.FlowList && kind != model.FlowSpecific {
			return nil, fmt.Errorf("formspec: file %s defines unknown flow %q", source, name)
		}
		flow, err := normaliseFlow(kind, raw, source)
		if err != nil {
			return nil, err
		}
		store.flows[kind] = flow
	}
	return store, nil
}

// Flow returns the definition for kind.
func (s *Store) Flow(kind model.FlowKind) (Flow, bool) {
	if s == nil {
		return Flow{}, false
	}
	flow, ok := s.flows[kind]
	return flow, ok
}

// Empty reports whether the store holds any flows.
func (s *Store) Empty() bool {
	return s == nil || len(s.flows) == 0
}

type documentFile struct {
	Flows map[string]flowFile `json:"flows" yaml:"flows"`
}

type flowFile struct {
	Title            string  `json:"title" yaml:"title"`
	OptionsOperation string  `json:"optionsOperation" yaml:"optionsOperation"`
	PredictOperation string  `json:"predictOperation" yaml:"predictOperation"`
	SortOptions      bool    `json:"sortOptions" yaml:"sortOptions"`
	Fields           []Field `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formspec: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseFlow(kind model.FlowKind, raw flowFile, source string) (Flow, error) {
	flow := Flow{
		Kind:             kind,
		Title:            strings.TrimSpace(raw.Title),
		OptionsOperation: strings.TrimSpace(raw.OptionsOperation),
		PredictOperation: strings.TrimSpace(raw.PredictOperation),
		SortOptions:      raw.SortOptions,
		Fields:           make([]Field, 0, len(raw.Fields)),
	}
	if flow.OptionsOperation == "" || flow.PredictOperation == "" {
		return Flow{}, fmt.Errorf("formspec: flow %q in %s must name its options and predict operations", kind, source)
	}
	if len(raw.Fields) == 0 {
		return Flow{}, fmt.Errorf("formspec: flow %q in %s declares no fields", kind, source)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for i, field := range raw.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return Flow{}, fmt.Errorf("formspec: flow %q field %d in %s has no name", kind, i, source)
		}
		if _, dup := seen[field.Name]; dup {
			return Flow{}, fmt.Errorf("formspec: flow %q in %s declares %q twice", kind, source, field.Name)
		}
		seen[field.Name] = struct{}{}

		switch field.Kind {
		case KindInteger:
			field.Source = ""
		case KindSelect:
			if strings.TrimSpace(field.Source) == "" {
				field.Source = field.Name
			}
		default:
			return Flow{}, fmt.Errorf("formspec: flow %q field %q in %s has unsupported kind %q", kind, field.Name, source, field.Kind)
		}
		if field.Label == "" {
			field.Label = field.Name
		}
		flow.Fields = append(flow.Fields, field)
	}
	return flow, nil
}

func isFlowFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
