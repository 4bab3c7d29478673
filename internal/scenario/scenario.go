// SPDX-License-Identifier: MIT

package scenario

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Scenario is one estimate plan: a process and the statistics to compute.
type Scenario struct {
	// Name identifies the scenario in output and in the result store.
	Name string `yaml:"name" json:"name"`

	// Seed fixes the engine seed. Nil means a time-based seed.
	Seed *uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	Process Process `yaml:"process" json:"process"`

	// Statistics are evaluated in order on one engine.
	Statistics []Statistic `yaml:"statistics" json:"statistics"`
}

// Process selects a reference provider and its parameters.
type Process struct {
	Kind   string             `yaml:"kind" json:"kind"`
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	return Parse(data)
}

// Parse validates data against the schema and decodes it strictly.
func Parse(data []byte) (*Scenario, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks the per-kind requirements the schema cannot express.
func (s *Scenario) Validate() error {
	if _, err := s.Process.Provider(); err != nil {
		return err
	}
	for i := range s.Statistics {
		if err := s.Statistics[i].validate(); err != nil {
			return fmt.Errorf("%w: statistics[%d]: %w", ErrInvalid, i, err)
		}
	}

	return nil
}

// checkSchema unifies the decoded document with #Scenario.
func checkSchema(raw any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("scenario: compiling schema: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	v := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, schemaMessage(err))
	}

	return nil
}

// schemaMessage flattens a CUE error list into one line per problem.
func schemaMessage(err error) string {
	var buf bytes.Buffer
	for i, e := range cueerrors.Errors(err) {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(e.Error())
	}

	return buf.String()
}
