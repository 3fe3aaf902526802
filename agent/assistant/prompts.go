package assistant

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/coffee.txt
	coffeePromptRaw string

	//go:embed prompts/grocery.txt
	groceryPromptRaw string

	//go:embed prompts/fraud.txt
	fraudPromptRaw string

	//go:embed prompts/tutor.txt
	tutorPromptRaw string

	//go:embed prompts/checkin.txt
	checkinPromptRaw string

	//go:embed prompts/lead.txt
	leadPromptRaw string
)

func prompt(raw string) string {
	return strings.TrimSpace(raw)
}
