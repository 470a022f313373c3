package inventory

import (
	"fmt"
	"sort"

	"tmx/internal/domain"
)

// SuiteAll selects every suite, BrowserAll every browser
const (
	SuiteAll   = "all"
	BrowserAll = "all"
)

// TestDef declares one test unit inside a suite
type TestDef struct {
	Name     string   `yaml:"name"`
	Minutes  float64  `yaml:"minutes"`
	Browsers []string `yaml:"browsers,omitempty"` // Empty means every browser
}

// Suite groups test units that share a concurrency ceiling
type Suite struct {
	Name     string    `yaml:"name"`
	Parallel int       `yaml:"parallel"` // Max jobs of this suite running at once
	Tests    []TestDef `yaml:"tests"`
}

// Inventory is the declarative catalog the planner draws from
type Inventory struct {
	Browsers []string `yaml:"browsers"`
	Suites   []Suite  `yaml:"suites"`
}

// Ceilings maps each suite to its concurrency ceiling
func (inv *Inventory) Ceilings() map[string]int {
	ceilings := make(map[string]int, len(inv.Suites))
	for _, s := range inv.Suites {
		ceilings[s.Name] = s.Parallel
	}
	return ceilings
}

// SuiteNames lists the declared suites in catalog order
func (inv *Inventory) SuiteNames() []string {
	names := make([]string, 0, len(inv.Suites))
	for _, s := range inv.Suites {
		names = append(names, s.Name)
	}
	return names
}

// HasSuite reports whether the inventory declares the suite
func (inv *Inventory) HasSuite(name string) bool {
	for _, s := range inv.Suites {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HasBrowser reports whether the inventory declares the browser
func (inv *Inventory) HasBrowser(name string) bool {
	for _, b := range inv.Browsers {
		if b == name {
			return true
		}
	}
	return false
}

// SelectBrowsers resolves a browser filter to the concrete browser list.
// BrowserAll selects every declared browser, sorted for determinism.
func (inv *Inventory) SelectBrowsers(filter string) []string {
	if filter == BrowserAll {
		browsers := make([]string, len(inv.Browsers))
		copy(browsers, inv.Browsers)
		sort.Strings(browsers)
		return browsers
	}
	return []string{filter}
}

// SelectUnits flattens the catalog into test units, restricted to one
// suite unless SuiteAll is given.
func (inv *Inventory) SelectUnits(suiteFilter string) ([]domain.TestUnit, error) {
	if suiteFilter != SuiteAll && !inv.HasSuite(suiteFilter) {
		return nil, fmt.Errorf("unknown suite %q: have %v", suiteFilter, inv.SuiteNames())
	}

	var units []domain.TestUnit
	for _, s := range inv.Suites {
		if suiteFilter != SuiteAll && s.Name != suiteFilter {
			continue
		}
		for _, t := range s.Tests {
			units = append(units, domain.TestUnit{
				ID:       t.Name,
				Suite:    s.Name,
				Browsers: t.Browsers,
				Weight:   t.Minutes,
			})
		}
	}
	return units, nil
}
