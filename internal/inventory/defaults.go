package inventory

// Default returns the built-in catalog used when no manifest is given.
// Times are rolling averages from recent CI runs, rounded to the half
// minute. Performance tests read DevTools metrics and only run on
// chrome.
func Default() *Inventory {
	return &Inventory{
		Browsers: []string{"chrome", "firefox", "edge"},
		Suites: []Suite{
			{
				Name:     "frontend",
				Parallel: 4,
				Tests: []TestDef{
					{Name: "test_user_registration", Minutes: 2},
					{Name: "test_user_authentication", Minutes: 1.5},
					{Name: "test_product_catalog", Minutes: 1.5},
					{Name: "test_shopping_cart", Minutes: 1.5},
					{Name: "test_checkout_process", Minutes: 1.5},
				},
			},
			{
				Name:     "backend",
				Parallel: 3,
				Tests: []TestDef{
					{Name: "test_admin_authentication", Minutes: 1},
					{Name: "test_product_management", Minutes: 2},
					{Name: "test_order_management", Minutes: 1.5},
					{Name: "test_customer_management", Minutes: 1.5},
				},
			},
			{
				Name:     "integration",
				Parallel: 2,
				Tests: []TestDef{
					{Name: "test_end_to_end_purchase", Minutes: 5},
					{Name: "test_cross_browser_compatibility", Minutes: 4},
					{Name: "test_email_notifications", Minutes: 3},
				},
			},
			{
				Name:     "performance",
				Parallel: 2,
				Tests: []TestDef{
					{Name: "test_page_load_performance", Minutes: 4, Browsers: []string{"chrome"}},
					{Name: "test_cart_performance", Minutes: 3, Browsers: []string{"chrome"}},
					{Name: "test_search_performance", Minutes: 3, Browsers: []string{"chrome"}},
				},
			},
			{
				Name:     "security",
				Parallel: 2,
				Tests: []TestDef{
					{Name: "test_sql_injection_protection", Minutes: 3},
					{Name: "test_xss_protection", Minutes: 2.5},
					{Name: "test_authentication_security", Minutes: 2.5},
				},
			},
			{
				Name:     "smoke",
				Parallel: 1,
				Tests: []TestDef{
					{Name: "test_basic_functionality", Minutes: 1.5},
					{Name: "test_critical_paths", Minutes: 1.5},
				},
			},
		},
	}
}
