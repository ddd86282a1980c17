package prompt

// Recommendation prompt segments, concatenated in this order:
// base, exclusion clause, region clause, hint instruction, summary instruction.
// Every segment except the last ends with a single space.
const (
	BaseInstruction    = "Recommend a unique, high-quality book in the %s genre. "
	ExclusionTemplate  = "Exclude the following: %s. "
	RegionTemplate     = "Prefer books from %s literature. "
	HintInstruction    = "Avoid well-known commercial or mainstream titles. Instead, %s. "
	SummaryInstruction = "Summarize the recommended book in %d short paragraph(s) in %s."
)

// LiteraryHints steer the model away from mainstream picks.
// One is chosen per request.
var LiteraryHints = []string{
	"focus on underrepresented literary voices",
	"highlight works by postmodern or surrealist writers",
	"avoid bestselling or overly commercial titles",
	"recommend award-winning but less globally known works",
	"suggest experimental or nonlinear narratives",
	"focus on authors who challenge traditional literary forms",
	"prioritize philosophical or existential themes",
	"include magical realism or speculative fiction influences",
	"avoid books adapted into Hollywood films",
	"explore literature dealing with memory, trauma, or identity",
	"recommend novels inspired by folklore or mythology",
	"highlight writers known for poetic prose or ambiguity",
	"focus on classic and contemporary works from Russian literature",
	"recommend books from the Silver Age of Russian poetry or Soviet-era writers",
	"highlight philosophical depth and psychological complexity found in Russian novels",
	"explore Japanese literature emphasizing minimalism and emotional restraint",
	"recommend works influenced by Zen aesthetics or mono no aware themes in Japanese writing",
	"highlight novels by Japanese authors exploring urban alienation or traditional vs modern identity",
}
