package battery

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// MinSupportedVersion is the oldest battery format the pipeline accepts.
// Batteries carry a semver so tables can be swapped at runtime without
// rebuilding, as long as the format is compatible.
const MinSupportedVersion = "1.0.0"

// VersionError reports a battery whose declared version is missing,
// malformed, or outside the supported range.
type VersionError struct {
	Version string
	Min     string
}

func (e *VersionError) Error() string {
	if e.Version == "" {
		return "battery has no version"
	}
	return fmt.Sprintf("battery version %q not supported (minimum %s, same major)", e.Version, e.Min)
}

// SchemaError reports a battery file that failed structural validation.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("battery schema validation failed: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// fileSchema returns the compiled battery file schema, compiling it on
// first use.
func fileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytesReader(batterySchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://battery.json", doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://battery.json")
	})
	return compiledSchema, schemaErr
}

// Load reads, validates, and builds a battery from a YAML file.
func Load(path string) (*Battery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read battery file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("battery %s: %w", path, err)
	}
	return b, nil
}

// Parse validates YAML battery data against the file schema, gates the
// declared version, and builds the resolved battery.
func Parse(data []byte) (*Battery, error) {
	// Validate the raw document before decoding into typed structs, so
	// misspelled keys and wrong-typed fields surface as schema errors
	// instead of silent zero values. Round-trip through JSON to get the
	// value shapes the schema validator expects.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse battery yaml: %w", err)
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize battery document: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytesReader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("normalize battery document: %w", err)
	}

	schema, err := fileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &SchemaError{Err: err}
	}

	var f batteryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode battery yaml: %w", err)
	}

	if !versionSupported(f.Version) {
		return nil, &VersionError{Version: f.Version, Min: MinSupportedVersion}
	}

	b := f.toBattery()
	if err := b.Build(); err != nil {
		return nil, fmt.Errorf("build battery: %w", err)
	}
	return b, nil
}

// versionSupported accepts versions at or above the minimum within the
// same major version. A new major means a breaking format change.
func versionSupported(v string) bool {
	vv := "v" + v
	if !semver.IsValid(vv) {
		return false
	}
	min := "v" + MinSupportedVersion
	return semver.Major(vv) == semver.Major(min) && semver.Compare(vv, min) >= 0
}

type batteryFile struct {
	Name        string           `yaml:"name"`
	Version     string           `yaml:"version"`
	Domains     []domainFile     `yaml:"domains"`
	Items       []itemFile       `yaml:"items"`
	Screenings  []screeningFile  `yaml:"screenings"`
	Classifiers []classifierFile `yaml:"classifiers"`
}

type domainFile struct {
	Name        string   `yaml:"name"`
	Class       string   `yaml:"class"`
	Scale       int      `yaml:"scale"`
	Reliability float64  `yaml:"reliability"`
	Keywords    []string `yaml:"keywords"`
}

type itemFile struct {
	ID       string `yaml:"id"`
	Domain   string `yaml:"domain"`
	Text     string `yaml:"text"`
	Reversed bool   `yaml:"reversed"`
	Impact   bool   `yaml:"impact"`
}

type screeningFile struct {
	Domain              string   `yaml:"domain"`
	BehavioralThreshold float64  `yaml:"behavioralThreshold"`
	StructuralDomains   []string `yaml:"structuralDomains"`
	StructuralCutoff    float64  `yaml:"structuralCutoff"`
	StructuralMin       int      `yaml:"structuralMin"`
	ImpactScore         int      `yaml:"impactScore"`
	ImpactMin           int      `yaml:"impactMin"`
}

type criterionFile struct {
	Domain    string  `yaml:"domain"`
	Direction string  `yaml:"direction"`
	Threshold float64 `yaml:"threshold"`
	Weight    float64 `yaml:"weight"`
}

type archetypeFile struct {
	Name           string          `yaml:"name"`
	Label          string          `yaml:"label"`
	Interpretation string          `yaml:"interpretation"`
	Criteria       []criterionFile `yaml:"criteria"`
}

type classifierFile struct {
	Name       string          `yaml:"name"`
	Archetypes []archetypeFile `yaml:"archetypes"`
}

func (f *batteryFile) toBattery() *Battery {
	b := &Battery{
		Name:    f.Name,
		Version: f.Version,
	}
	for _, d := range f.Domains {
		b.Domains = append(b.Domains, Domain{
			Name:        d.Name,
			Class:       DomainClass(d.Class),
			Scale:       d.Scale,
			Reliability: d.Reliability,
			Keywords:    d.Keywords,
		})
	}
	for _, it := range f.Items {
		b.Items = append(b.Items, Item{
			ID:       it.ID,
			Domain:   it.Domain,
			Text:     it.Text,
			Reversed: it.Reversed,
			Impact:   it.Impact,
		})
	}
	for _, s := range f.Screenings {
		b.Screenings = append(b.Screenings, ScreeningRule{
			Domain:              s.Domain,
			BehavioralThreshold: s.BehavioralThreshold,
			StructuralDomains:   s.StructuralDomains,
			StructuralCutoff:    s.StructuralCutoff,
			StructuralMin:       s.StructuralMin,
			ImpactScore:         s.ImpactScore,
			ImpactMin:           s.ImpactMin,
		})
	}
	for _, cf := range f.Classifiers {
		set := ClassifierSet{Name: cf.Name}
		for _, af := range cf.Archetypes {
			a := Archetype{
				Name:           af.Name,
				Label:          af.Label,
				Interpretation: af.Interpretation,
			}
			for _, c := range af.Criteria {
				a.Criteria = append(a.Criteria, Criterion{
					Domain:    c.Domain,
					Direction: Direction(c.Direction),
					Threshold: c.Threshold,
					Weight:    c.Weight,
				})
			}
			set.Archetypes = append(set.Archetypes, a)
		}
		b.Classifiers = append(b.Classifiers, set)
	}
	return b
}
