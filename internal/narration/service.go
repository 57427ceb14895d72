// Package narration renders a planned itinerary as prose, through an LLM
// when one is configured and deterministically otherwise.
package narration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/wayfarer/internal/app"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/llm"
)

type narrativeResponse struct {
	Overview string         `json:"overview"`
	Days     []narrativeDay `json:"days"`
}

type narrativeDay struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type service struct {
	client llm.LLMClient
	logger *slog.Logger
}

// New returns a narrator. A nil client always uses the deterministic text.
func New(client llm.LLMClient, logger *slog.Logger) app.NarrateUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &service{client: client, logger: logger}
}

// Narrate never fails because of the LLM: any client or output error falls
// back to Deterministic. Only context cancellation is returned.
func (s *service) Narrate(ctx context.Context, it *domain.Itinerary) (string, error) {
	if s.client == nil {
		return Deterministic(it), nil
	}

	payload, err := json.Marshal(promptView(it))
	if err != nil {
		return Deterministic(it), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNarrate,
		SystemPrompt: narrateSystemPrompt,
		UserPrompt:   "Here is the itinerary:\n\n" + string(payload),
		JSON:         true,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		s.logger.Warn("narration fell back to deterministic text", "reason", err.Error())
		return Deterministic(it), nil
	}

	out, err := llm.ExtractJSON(resp.Text, validateAgainst(it))
	if err != nil {
		s.logger.Warn("narration fell back to deterministic text", "reason", err.Error())
		return Deterministic(it), nil
	}
	return render(out), nil
}

// validateAgainst rejects narratives that skip, add or reorder trip days.
func validateAgainst(it *domain.Itinerary) func(narrativeResponse) error {
	return func(n narrativeResponse) error {
		if strings.TrimSpace(n.Overview) == "" {
			return fmt.Errorf("overview is empty")
		}
		if len(n.Days) != len(it.Days) {
			return fmt.Errorf("narrative covers %d days, itinerary has %d", len(n.Days), len(it.Days))
		}
		for i, d := range n.Days {
			want := it.Days[i].Date.Format(domain.DateLayout)
			if d.Date != want {
				return fmt.Errorf("day %d is %q, expected %s", i, d.Date, want)
			}
		}
		return nil
	}
}

func render(n narrativeResponse) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(n.Overview))
	b.WriteString("\n")
	for _, d := range n.Days {
		date, err := time.Parse(domain.DateLayout, d.Date)
		label := d.Date
		if err == nil {
			label = date.Format("Mon 2 Jan")
		}
		fmt.Fprintf(&b, "\n%s: %s", label, strings.TrimSpace(d.Text))
	}
	return b.String()
}

type promptDay struct {
	Date       string   `json:"date"`
	Weather    string   `json:"weather"`
	Advice     []string `json:"advice,omitempty"`
	Activities []string `json:"activities"`
}

// promptView is the compact itinerary shape sent to the model.
func promptView(it *domain.Itinerary) map[string]any {
	days := make([]promptDay, 0, len(it.Days))
	for _, d := range it.Days {
		pd := promptDay{
			Date:       d.Date.Format(domain.DateLayout),
			Weather:    domain.CoalesceStr(d.Weather.Condition, "unknown"),
			Advice:     d.Weather.Advice,
			Activities: []string{},
		}
		for _, a := range d.Assignments {
			pd.Activities = append(pd.Activities,
				fmt.Sprintf("%s-%s %s (%s, %s)", a.Start, a.End, a.Activity.Name, a.Activity.Category, a.Cost.StringFixed(2)))
		}
		days = append(days, pd)
	}
	return map[string]any{
		"destination": it.Destination,
		"budget":      it.Summary.Budget.StringFixed(2),
		"total_cost":  it.Summary.TotalCost.StringFixed(2),
		"days":        days,
	}
}
