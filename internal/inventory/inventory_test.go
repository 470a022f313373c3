package inventory

import (
	"testing"
)

func TestSelectUnits(t *testing.T) {
	inv := Default()

	t.Run("all suites", func(t *testing.T) {
		units, err := inv.SelectUnits(SuiteAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(units) != 20 {
			t.Errorf("expected 20 units, got %d", len(units))
		}
	})

	t.Run("single suite", func(t *testing.T) {
		units, err := inv.SelectUnits("frontend")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(units) != 5 {
			t.Errorf("expected 5 frontend units, got %d", len(units))
		}
		for _, u := range units {
			if u.Suite != "frontend" {
				t.Errorf("unit %s has suite %s", u.ID, u.Suite)
			}
			if u.Weight <= 0 {
				t.Errorf("unit %s has non-positive weight %v", u.ID, u.Weight)
			}
		}
	})

	t.Run("unknown suite", func(t *testing.T) {
		if _, err := inv.SelectUnits("mobile"); err == nil {
			t.Error("expected error for unknown suite")
		}
	})
}

func TestSelectBrowsers(t *testing.T) {
	inv := Default()

	t.Run("all browsers sorted", func(t *testing.T) {
		browsers := inv.SelectBrowsers(BrowserAll)
		want := []string{"chrome", "edge", "firefox"}
		if len(browsers) != len(want) {
			t.Fatalf("expected %d browsers, got %d", len(want), len(browsers))
		}
		for i := range want {
			if browsers[i] != want[i] {
				t.Errorf("browser[%d]: expected %s, got %s", i, want[i], browsers[i])
			}
		}
	})

	t.Run("single browser", func(t *testing.T) {
		browsers := inv.SelectBrowsers("firefox")
		if len(browsers) != 1 || browsers[0] != "firefox" {
			t.Errorf("expected [firefox], got %v", browsers)
		}
	})
}

func TestRunsOn(t *testing.T) {
	units, err := Default().SelectUnits("performance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, u := range units {
		if !u.RunsOn("chrome") {
			t.Errorf("%s should run on chrome", u.ID)
		}
		if u.RunsOn("firefox") {
			t.Errorf("%s should not run on firefox", u.ID)
		}
	}
}
