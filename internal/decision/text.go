package decision

var recommendations = map[Category]map[Tier]string{
	CategoryRent: {
		Excellent: "Excellent choice! This housing cost leaves plenty of room for savings and other goals.",
		Good:      "Good fit for your budget. You'll still have flexibility for other expenses and savings.",
		Caution:   "This will be tight on your budget. Consider if the location/amenities justify the cost.",
		HighRisk:  "This housing cost is too high for your current income. Reconsider, look for alternatives or increase income.",
	},
	CategoryCar: {
		Excellent: "Great choice! This car fits comfortably within your budget.",
		Good:      "Reasonable purchase that won't strain your finances significantly.",
		Caution:   "Consider if you need all the features or if a less expensive option would work better.",
		HighRisk:  "This car is not affordable on your current budget. Reconsider and look at used cars or alternative transportation.",
	},
	CategoryEducation: {
		Excellent: "Excellent investment! You can afford this education comfortably.",
		Good:      "Good investment if it aligns with your career goals and earning potential.",
		Caution:   "Significant investment. Ensure the return justifies the cost and consider funding options.",
		HighRisk:  "This education cost is not affordable in your current situation. Reconsider and explore financial aid and alternatives.",
	},
	CategoryMoving: {
		Excellent: "Great move! Living costs stay in line and moving expenses are minimal.",
		Good:      "Reasonable move with manageable costs.",
		Caution:   "Consider if the benefits (career, lifestyle) justify the change in living costs and the upfront expense.",
		HighRisk:  "This move is not affordable right now. Reconsider the timing, reduce moving costs or negotiate relocation assistance.",
	},
}

var alternativeOptions = map[Category][]string{
	CategoryRent: {
		"Look for shared housing options",
		"Consider suburbs with lower rent",
		"Negotiate rent or find a roommate",
		"Explore different neighborhoods",
	},
	CategoryCar: {
		"Consider a certified pre-owned vehicle",
		"Look into longer loan terms to reduce monthly payment",
		"Explore leasing options",
		"Consider public transportation + occasional car sharing",
	},
	CategoryEducation: {
		"Apply for scholarships and grants",
		"Consider part-time study while working",
		"Look into employer education benefits",
		"Explore online or community college options",
	},
	CategoryMoving: {
		"Get quotes from multiple moving companies",
		"Consider a gradual move or shipping belongings",
		"Look for relocation assistance from employer",
		"Sell items instead of moving them",
	},
}

func recommendation(c Category, t Tier) string {
	return recommendations[c][t]
}

// alternatives returns a fresh copy so callers may modify the list
func alternatives(c Category) []string {
	return append([]string(nil), alternativeOptions[c]...)
}
