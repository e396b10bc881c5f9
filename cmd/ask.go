package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/aggregate"
	"github.com/pable/go-cs-coach/internal/storage"
)

const askSystemPrompt = `You are a Counter-Strike 2 coach. You are given structured analysis data
from a gameplay review tool and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable. Focus on what the player can actually improve.
- Avoid generic CS2 advice unless it directly explains a pattern in the data.

Metrics glossary:
- K/D: Kills divided by deaths. 1.0 is break-even.
- Crosshair offset (deg): Angle between where the player aimed and the
  attacker at the moment of death. Under 30 is fine, over 60 is terrible.
- Avoidable death: died isolated with no utility cover and no mitigating
  factor (flash thrown, teammates nearby, close-range fight).
- No-advantage duel: died without any edge (flash, numbers, headshot,
  trade potential).
- Useful flash: flash that blinded an enemy effectively or led to a kill
  within 3 seconds.
- Pop flash: flash that detonated too fast for the enemy to turn away.
- Value lost: equipment dollars destroyed by each death.
- Zone K/D: kills vs deaths inside a named map region.`

var (
	askModel  string
	askAPIKey string
	askMatch  string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "AI-powered coaching over stored analyses (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	askCmd.Flags().StringVar(&askMatch, "match", "", "ask about one stored match instead of the whole history")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var contextJSON string
	if askMatch != "" {
		contextJSON, err = buildMatchContext(db, askMatch)
	} else {
		contextJSON, err = buildHistoryContext(db)
	}
	if err != nil {
		return err
	}

	return askAnthropic(cmd.Context(), askAPIKey, askModel, contextJSON, question)
}

// buildMatchContext serialises one stored match analysis.
func buildMatchContext(db *storage.DB, name string) (string, error) {
	rec, err := db.GetMatch(name)
	if err != nil {
		return "", fmt.Errorf("load match: %w", err)
	}
	if rec == nil {
		return "", fmt.Errorf("no match stored under %q", name)
	}

	doc := map[string]interface{}{
		"subject":     "match",
		"match":       rec.Name,
		"map":         rec.MapName,
		"analyzed_at": rec.AnalyzedAt,
		"analysis":    rec.Analysis,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// buildHistoryContext serialises the cross-match aggregate of every
// stored analysis.
func buildHistoryContext(db *storage.DB) (string, error) {
	records, err := db.GetAllAnalyses(0)
	if err != nil {
		return "", fmt.Errorf("load matches: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("no matches stored yet; run 'cscoach analyze' first")
	}

	agg := aggregate.New()
	for _, rec := range records {
		agg.Add(rec.Analysis, rec.Name)
	}
	result, err := agg.Compute()
	if err != nil {
		return "", fmt.Errorf("aggregate matches: %w", err)
	}

	doc := map[string]interface{}{
		"subject":   "history",
		"player":    cfg.Player,
		"aggregate": result,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// askAnthropic streams a response from the Anthropic API to stdout.
func askAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── Coach ───────────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: askSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
