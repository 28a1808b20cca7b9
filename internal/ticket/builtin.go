package ticket

// Builtin returns the demonstration tickets bundled with the binary.
func Builtin() []Ticket {
	return cloneTickets(builtinTickets)
}

var builtinTickets = []Ticket{
	{
		ID:          "TKT-101",
		Title:       "Failed login attempts on production",
		Description: "Users are reporting that their login attempts are failing with a generic error message after three consecutive tries. The issue seems to be related to the rate-limiting feature introduced in the last deployment. This is a high-priority bug.",
		Keywords:    []string{"login", "authentication", "rate-limiting", "bug", "production"},
	},
	{
		ID:          "TKT-102",
		Title:       "Update dashboard UI for better readability",
		Description: "The current dashboard layout is cluttered and difficult to read. We need to update the color scheme, font sizes, and card layouts to improve the user experience. This is a UX improvement task.",
		Keywords:    []string{"UI", "UX", "dashboard", "redesign", "frontend"},
	},
	{
		ID:          "TKT-103",
		Title:       "Investigate slow database queries",
		Description: "The API endpoint for fetching user data is experiencing significant latency. We suspect some database queries are inefficient and need to be optimized. This task requires a backend developer to profile and refactor the queries.",
		Keywords:    []string{"database", "performance", "latency", "backend", "optimization"},
	},
	{
		ID:          "TKT-104",
		Title:       "Implement new user signup flow",
		Description: "We need to create a new, more streamlined user registration process. This includes a new form, email verification, and a welcome page. The new flow should be intuitive and guide the user effectively.",
		Keywords:    []string{"signup", "onboarding", "user flow", "registration", "frontend"},
	},
}
