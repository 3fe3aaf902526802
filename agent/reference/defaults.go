package reference

// Built-in datasets used when the external source is missing or corrupt.
// Kept small: enough for every assistant to function out of the box.

func defaultItems() []Item {
	return []Item{
		{ID: "item-001", Name: "Whole Wheat Bread", Category: "Bakery", Price: 3.49},
		{ID: "item-002", Name: "Peanut Butter", Category: "Pantry", Price: 4.99},
		{ID: "item-003", Name: "Strawberry Jam", Category: "Pantry", Price: 3.79},
		{ID: "item-004", Name: "Whole Milk", Category: "Dairy", Price: 2.99},
		{ID: "item-005", Name: "Eggs", Category: "Dairy", Price: 4.29},
		{ID: "item-006", Name: "Cheddar Cheese", Category: "Dairy", Price: 5.49},
		{ID: "item-007", Name: "Spaghetti", Category: "Pantry", Price: 1.99},
		{ID: "item-008", Name: "Tomato Sauce", Category: "Pantry", Price: 2.49},
		{ID: "item-009", Name: "Ground Beef", Category: "Meat", Price: 7.99},
		{ID: "item-010", Name: "Bananas", Category: "Produce", Price: 1.29},
		{ID: "item-011", Name: "Apples", Category: "Produce", Price: 3.99},
		{ID: "item-012", Name: "Tortilla Chips", Category: "Snacks", Price: 3.29},
		{ID: "item-013", Name: "Salsa", Category: "Snacks", Price: 3.99},
		{ID: "item-014", Name: "Butter", Category: "Dairy", Price: 4.79},
	}
}

func defaultConcepts() []Concept {
	return []Concept{
		{
			ID:             "concept-001",
			Title:          "Photosynthesis",
			Summary:        "Plants convert sunlight water and carbon dioxide into glucose and oxygen inside chloroplasts",
			SampleQuestion: "What do plants produce during photosynthesis?",
		},
		{
			ID:             "concept-002",
			Title:          "Pythagorean Theorem",
			Summary:        "In a right triangle the square of the hypotenuse equals the sum of squares of the other sides",
			SampleQuestion: "How do you find the hypotenuse of a right triangle?",
		},
		{
			ID:             "concept-003",
			Title:          "Supply and Demand",
			Summary:        "Market prices rise when demand exceeds supply and fall when supply exceeds demand",
			SampleQuestion: "What happens to price when demand goes up but supply stays flat?",
		},
		{
			ID:             "concept-004",
			Title:          "Water Cycle",
			Summary:        "Water evaporates condenses into clouds and returns as precipitation feeding rivers and oceans",
			SampleQuestion: "What happens to water after it evaporates?",
		},
	}
}
