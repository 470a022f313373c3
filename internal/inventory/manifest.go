package inventory

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Suite, browser and test names end up in job keys and artifact file
// names, so hyphens are forbidden.
var nameRE = regexp.MustCompile(`^[a-z0-9_]+$`)

// Load reads and validates a YAML inventory manifest
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory manifest: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory manifest: %w", err)
	}

	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inventory manifest %s: %w", path, err)
	}
	return &inv, nil
}

// Validate checks the catalog invariants the planner relies on
func (inv *Inventory) Validate() error {
	if len(inv.Browsers) == 0 {
		return fmt.Errorf("no browsers declared")
	}
	seenBrowsers := make(map[string]bool)
	for _, b := range inv.Browsers {
		if !nameRE.MatchString(b) {
			return fmt.Errorf("browser name %q must match %s", b, nameRE)
		}
		if seenBrowsers[b] {
			return fmt.Errorf("duplicate browser %q", b)
		}
		seenBrowsers[b] = true
	}

	if len(inv.Suites) == 0 {
		return fmt.Errorf("no suites declared")
	}
	seenSuites := make(map[string]bool)
	seenTests := make(map[string]string)
	for _, s := range inv.Suites {
		if !nameRE.MatchString(s.Name) {
			return fmt.Errorf("suite name %q must match %s", s.Name, nameRE)
		}
		if seenSuites[s.Name] {
			return fmt.Errorf("duplicate suite %q", s.Name)
		}
		seenSuites[s.Name] = true
		if s.Parallel < 0 {
			return fmt.Errorf("suite %q: parallel must not be negative", s.Name)
		}
		if len(s.Tests) == 0 {
			return fmt.Errorf("suite %q declares no tests", s.Name)
		}
		for _, t := range s.Tests {
			if !nameRE.MatchString(t.Name) {
				return fmt.Errorf("suite %q: test name %q must match %s", s.Name, t.Name, nameRE)
			}
			if other, dup := seenTests[t.Name]; dup {
				return fmt.Errorf("test %q declared in both %q and %q", t.Name, other, s.Name)
			}
			seenTests[t.Name] = s.Name
			if t.Minutes <= 0 {
				return fmt.Errorf("test %q: minutes must be positive, got %v", t.Name, t.Minutes)
			}
			for _, b := range t.Browsers {
				if !seenBrowsers[b] {
					return fmt.Errorf("test %q references undeclared browser %q", t.Name, b)
				}
			}
		}
	}
	return nil
}
