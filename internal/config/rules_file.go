package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"chart-color-inspector/internal/classifier"
)

// rulesFile is the YAML schema for custom rule sets. It restates the same
// table-driven condition form the built-in rules use:
//
//	colors:
//	  teal:
//	    description: Colors between green and blue
//	    conditions:
//	      - name: blue significant
//	        left: b
//	        op: ">="
//	        right: max_rg
//	        scale: 0.7
//	      - name: blue present
//	        left: b
//	        op: ">"
//	        value: 30
type rulesFile struct {
	Colors map[string]ruleYAML `yaml:"colors"`
}

type ruleYAML struct {
	Description string          `yaml:"description"`
	Conditions  []conditionYAML `yaml:"conditions"`
}

type conditionYAML struct {
	Name   string            `yaml:"name"`
	Left   string            `yaml:"left"`
	Op     string            `yaml:"op"`
	Right  string            `yaml:"right"`
	Scale  float64           `yaml:"scale"`
	Offset float64           `yaml:"offset"`
	Value  *float64          `yaml:"value"`
	AnyOf  [][]conditionYAML `yaml:"any_of"`
}

var yamlTerms = map[string]classifier.Term{
	"":          classifier.TermZero,
	"zero":      classifier.TermZero,
	"r":         classifier.TermR,
	"g":         classifier.TermG,
	"b":         classifier.TermB,
	"max_rg":    classifier.TermMaxRG,
	"max_rb":    classifier.TermMaxRB,
	"max_gb":    classifier.TermMaxGB,
	"max_rgb":   classifier.TermMaxRGB,
	"min_rg":    classifier.TermMinRG,
	"min_rgb":   classifier.TermMinRGB,
	"variation": classifier.TermVariation,
}

var yamlOps = map[string]classifier.Op{
	">":  classifier.OpGT,
	">=": classifier.OpGE,
	"<":  classifier.OpLT,
	"<=": classifier.OpLE,
}

// LoadRulesFile reads a YAML rule file and converts it to color rules.
// YAML maps carry no order, so rules come back sorted by name for
// reproducible "analyze all" runs.
func LoadRulesFile(path string) ([]classifier.ColorRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules converts YAML rule definitions into color rules.
func ParseRules(data []byte) ([]classifier.ColorRule, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if len(file.Colors) == 0 {
		return nil, fmt.Errorf("rules file defines no colors")
	}

	names := make([]string, 0, len(file.Colors))
	for name := range file.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]classifier.ColorRule, 0, len(names))
	for _, name := range names {
		def := file.Colors[name]
		conditions, err := convertConditions(name, def.Conditions)
		if err != nil {
			return nil, err
		}
		rules = append(rules, classifier.ColorRule{
			Name:        strings.ToLower(name),
			Description: def.Description,
			Conditions:  conditions,
		})
	}
	return rules, nil
}

func convertConditions(ruleName string, defs []conditionYAML) ([]classifier.Condition, error) {
	conditions := make([]classifier.Condition, 0, len(defs))
	for i, def := range defs {
		cond, err := convertCondition(ruleName, def)
		if err != nil {
			return nil, fmt.Errorf("color %q condition %d: %w", ruleName, i+1, err)
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func convertCondition(ruleName string, def conditionYAML) (classifier.Condition, error) {
	cond := classifier.Condition{Name: def.Name}

	if len(def.AnyOf) > 0 {
		for _, group := range def.AnyOf {
			converted, err := convertConditions(ruleName, group)
			if err != nil {
				return classifier.Condition{}, err
			}
			cond.AnyOf = append(cond.AnyOf, converted)
		}
		return cond, nil
	}

	left, ok := yamlTerms[strings.ToLower(def.Left)]
	if !ok {
		return classifier.Condition{}, fmt.Errorf("unknown term %q", def.Left)
	}
	if left == classifier.TermZero {
		return classifier.Condition{}, fmt.Errorf("condition needs a left term")
	}
	op, ok := yamlOps[def.Op]
	if !ok {
		return classifier.Condition{}, fmt.Errorf("unknown operator %q", def.Op)
	}
	right, ok := yamlTerms[strings.ToLower(def.Right)]
	if !ok {
		return classifier.Condition{}, fmt.Errorf("unknown term %q", def.Right)
	}

	cond.Left = left
	cond.Op = op
	cond.Right = right
	cond.Scale = def.Scale
	cond.Offset = def.Offset
	// "value" is shorthand for a plain numeric threshold.
	if def.Value != nil {
		if right != classifier.TermZero {
			return classifier.Condition{}, fmt.Errorf("value and right are mutually exclusive")
		}
		cond.Offset = *def.Value
	}
	return cond, nil
}
