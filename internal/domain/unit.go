package domain

// TestUnit represents one schedulable test module from the inventory
type TestUnit struct {
	ID       string   // Unique test module name, e.g. "test_user_registration"
	Suite    string   // Suite the unit belongs to, e.g. "frontend"
	Browsers []string // Browsers the unit can run on; empty means every browser
	Weight   float64  // Estimated run time in minutes used for planning
}

// RunsOn reports whether the unit can execute on the given browser
func (u TestUnit) RunsOn(browser string) bool {
	if len(u.Browsers) == 0 {
		return true
	}
	for _, b := range u.Browsers {
		if b == browser {
			return true
		}
	}
	return false
}

// PlannedUnit is a single run instance of a test unit inside a chunk
type PlannedUnit struct {
	ID   string  // Test unit ID
	Cost float64 // Estimated minutes charged to the chunk
}
