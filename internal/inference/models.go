package inference

// Model identifiers accepted for wireframe analysis. All are served through
// the OpenRouter chat-completions API.
const (
	ModelDeepseek = "deepseek/deepseek-chat-v3-0324:free"
	ModelMolmo    = "allenai/molmo-7b-d:free"
	ModelGemini   = "google/gemini-2.0-pro-exp-02-05:free"
)

// ModelInfo describes one selectable vision model for clients that render
// a picker.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
}

// Catalog lists the supported vision models in display order.
var Catalog = []ModelInfo{
	{
		ID:          "deepseek",
		Name:        "Deepseek V3",
		Model:       ModelDeepseek,
		Description: "Most advanced model for code generation and UI analysis",
		Badge:       "Recommended",
	},
	{
		ID:          "allen",
		Name:        "Allen Molmo",
		Model:       ModelMolmo,
		Description: "Most advanced model for code generation and UI analysis",
		Badge:       "Creative",
	},
	{
		ID:          "gemini",
		Name:        "Google Gemini",
		Model:       ModelGemini,
		Description: "Most advanced model for code generation and UI analysis",
		Badge:       "Recommended",
	},
}

// IsAllowed reports whether model is one of the supported identifiers.
func IsAllowed(model string) bool {
	for _, m := range Catalog {
		if m.Model == model {
			return true
		}
	}
	return false
}
