package assistant

import (
	"strings"

	"pet-lost-found/internal/domain/reports"
)

// BuildPrompt arma el prompt para el generador.
// Salida esperada: un párrafo, sin markdown.
func BuildPrompt(in Attributes) string {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "not known"
	}
	chip := "No"
	if in.IsMicrochipped {
		chip = "Yes"
	}

	var b strings.Builder
	b.WriteString("Generate a heartfelt and descriptive alert for a ")
	b.WriteString(strings.ToLower(string(in.Status)))
	b.WriteString(" pet. Be concise but include key details.\n")
	if in.Status == reports.StatusLost {
		b.WriteString("The tone should be urgent but hopeful.\n")
	} else {
		b.WriteString("The tone should be caring and informative.\n")
	}
	b.WriteString("Do not use markdown. Output only the description text, as a single paragraph.\n\n")

	b.WriteString("Details:\n")
	line := func(k, v string) {
		b.WriteString("- ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(v))
		b.WriteString("\n")
	}
	line("Status", string(in.Status))
	line("Name", name)
	line("Species", in.Species)
	line("Breed", in.Breed)
	line("Color", in.Color)
	line("Age", in.Age)
	line("Gender", string(in.Gender))
	line("Microchipped", chip)
	line("Location", in.Location)
	line("Date", in.Date)
	line("Existing Description", in.Description)

	b.WriteString("\nCombine these details into a compelling paragraph. ")
	b.WriteString("Mention distinctive markings if they appear in the existing description.")
	return b.String()
}
