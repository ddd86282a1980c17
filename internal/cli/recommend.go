package cli

import (
	"context"
	"fmt"
	"io"

	"book-recommender/backend/internal/agent"
	"book-recommender/backend/internal/agent/history"
	"book-recommender/backend/internal/agent/sanitize"
	"book-recommender/backend/internal/config"
	"book-recommender/backend/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	genre      string
	language   string
	region     string
	exclude    string
	paragraphs int
	count      int
	verbose    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend one or more lesser-known books",
	Long: `Recommend books for a genre, summarized in the requested language.

With --count greater than one, each recommendation excludes the titles
suggested before it in the same run.

Required environment variables:
  GEMINI_API_KEY     - Gemini API key (GOOGLE_GEMINI_KEY is also accepted)
  OPENAI_API_KEY     - when LLM_PROVIDER=openai

Examples:
  bookrec recommend --genre "Magical Realism" --language English
  bookrec recommend --genre Sci-fi --language Japanese --region Russian --paragraphs 3
  bookrec recommend --genre Mystery --language English --exclude "Agatha Christie" --count 3 --verbose`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVar(&genre, "genre", "", "Genre or type, e.g. Sci-fi, Literary Fiction")
	recommendCmd.Flags().StringVar(&language, "language", "", "Language of the summary")
	recommendCmd.Flags().StringVar(&region, "region", string(model.RegionNoPreference), "Preferred literature region (see 'bookrec regions')")
	recommendCmd.Flags().StringVar(&exclude, "exclude", "", "Comma separated books or authors to exclude")
	recommendCmd.Flags().IntVar(&paragraphs, "paragraphs", model.DefaultParagraphs, "Number of summary paragraphs (1-5)")
	recommendCmd.Flags().IntVar(&count, "count", 1, "Number of recommendations to request in sequence")
	recommendCmd.Flags().BoolVar(&verbose, "verbose", false, "Show the hint and prompt of each request")
	recommendCmd.MarkFlagRequired("genre")
	recommendCmd.MarkFlagRequired("language")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	prefs, err := sanitize.Preferences(genre, language, region, exclude, paragraphs)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	if !prefs.Complete() {
		return fmt.Errorf("%s genre and language must not be blank", errorStyle.Render("Error:"))
	}
	if count < 1 {
		return fmt.Errorf("%s --count must be at least 1", errorStyle.Render("Error:"))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	llmClient, err := agent.NewLLMClient(ctx, agent.LLMOptions{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
	})
	if err != nil {
		return fmt.Errorf("%s Failed to create model client: %w", errorStyle.Render("Error:"), err)
	}

	// One run is one session, history lives in memory only
	rec := agent.NewRecommender(llmClient, history.NewMemoryStore())
	return recommendN(ctx, cmd.OutOrStdout(), rec, prefs, count, verbose)
}

// recommendN requests count recommendations in one session and prints each
func recommendN(ctx context.Context, w io.Writer, rec *agent.Recommender, prefs model.Preferences, count int, verbose bool) error {
	sessionID := uuid.New().String()

	for i := 1; i <= count; i++ {
		if verbose {
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("→ Requesting recommendation %d/%d...", i, count)))
		}

		result, err := rec.Recommend(ctx, sessionID, prefs)
		if err != nil {
			return fmt.Errorf("%s Failed to generate recommendation: %w", errorStyle.Render("Error:"), err)
		}
		if result == nil {
			return nil
		}
		renderRecommendation(w, i, result, verbose)
	}

	titles, err := rec.History(ctx, sessionID)
	if err != nil {
		return err
	}
	renderHistory(w, titles)
	return nil
}
