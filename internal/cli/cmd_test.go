package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/wayfarer/internal/config"
	"github.com/alexanderramin/wayfarer/internal/db"
	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/alexanderramin/wayfarer/internal/importer"
	"github.com/alexanderramin/wayfarer/internal/narration"
	"github.com/alexanderramin/wayfarer/internal/repository"
	"github.com/alexanderramin/wayfarer/internal/scheduler"
	"github.com/alexanderramin/wayfarer/internal/service"
	"github.com/alexanderramin/wayfarer/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portoRequest = "testdata/porto.json"

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	itineraries := repository.NewSQLiteItineraryRepo(database)
	profiles := repository.NewSQLitePlannerProfileRepo(database)

	return &App{
		Planner:  service.NewPlannerService(scheduler.DefaultDayConfig()),
		History:  service.NewHistoryService(db.NewSQLiteUnitOfWork(database), itineraries),
		Profiles: service.NewProfileService(profiles),
		Narrator: narration.New(nil, nil),
		Config:   config.Default(),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

// savedID plans and saves the Porto request, returning the printed short ID.
func savedID(t *testing.T, app *App) string {
	t.Helper()
	out, err := executeCmd(t, app, "plan", portoRequest, "--save")
	require.NoError(t, err)
	m := regexp.MustCompile(`Saved itinerary (\S+)`).FindStringSubmatch(out)
	require.Len(t, m, 2, "output: %s", out)
	return m[1]
}

// --- plan ---

func TestPlanCmd_RendersItinerary(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "plan", portoRequest)
	require.NoError(t, err)

	assert.Contains(t, out, "Itinerary · Porto")
	assert.Contains(t, out, "Serralves Museum")
	assert.Contains(t, out, "Ribeira Walk")
	assert.Contains(t, out, "Fri 1 May 2026")
	assert.Contains(t, out, "Sat 2 May 2026")
	assert.Contains(t, out, string(domain.WarnMalformedInputRecord))
}

func TestPlanCmd_JSONOutput(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "plan", portoRequest, "--json")
	require.NoError(t, err)

	var got struct {
		Destination string            `json:"destination"`
		Days        []json.RawMessage `json:"days"`
		Warnings    []domain.Warning  `json:"warnings"`
		Summary     domain.Summary    `json:"summary"`
		Narrative   string            `json:"narrative"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "Porto", got.Destination)
	assert.Len(t, got.Days, 2)
	assert.Equal(t, 2, got.Summary.ActivityCount)
	assert.True(t, got.Summary.TotalCost.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.Summary.Budget.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, got.Narrative)
	require.NotEmpty(t, got.Warnings)
	assert.Equal(t, domain.WarnMalformedInputRecord, got.Warnings[0].Code)
}

func TestPlanCmd_BudgetOverride(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "plan", portoRequest, "--json", "--budget", "10")
	require.NoError(t, err)

	var got struct {
		Summary domain.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Summary.Budget.Equal(decimal.NewFromInt(10)))
	assert.True(t, got.Summary.TotalCost.IsZero(), "the museum no longer fits the budget")
	assert.Equal(t, 1, got.Summary.ActivityCount)
}

func TestPlanCmd_RejectsBadBudgetFlag(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "plan", portoRequest, "--budget", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestPlanCmd_Narrate(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "plan", portoRequest, "--narrate")
	require.NoError(t, err)

	assert.Contains(t, out, "Trip story")
	assert.Contains(t, out, "Your 2-day trip to Porto includes 2 activities")
}

func TestPlanCmd_NarrateJSON(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "plan", portoRequest, "--narrate", "--json")
	require.NoError(t, err)

	var got struct {
		Narrative string `json:"narrative"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, strings.HasPrefix(got.Narrative, "Your 2-day trip to Porto"))
}

func TestPlanCmd_ExportsCalendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "porto.ics")
	out, err := executeCmd(t, testApp(t), "plan", portoRequest, "--ics", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote calendar to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "SUMMARY:Serralves Museum")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestPlanCmd_InteractiveNeedsTerminal(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "plan", portoRequest, "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestPlanCmd_InvalidRequestFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "plan", "testdata/invalid.json")
	require.Error(t, err)

	var verr *importer.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "before start_date")
}

func TestPlanCmd_MissingFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "plan", "testdata/nope.json")
	require.Error(t, err)
}

func TestPlanCmd_RequiresFileArgument(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "plan")
	require.Error(t, err)
}

// --- history ---

func TestHistory_SaveListShowDelete(t *testing.T) {
	app := testApp(t)
	id := savedID(t, app)

	out, err := executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Porto")
	assert.Contains(t, out, "2026-05-01 → 2026-05-02")

	out, err = executeCmd(t, app, "history", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Serralves Museum")
	assert.Contains(t, out, "saved ")

	out, err = executeCmd(t, app, "history", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted itinerary "+id)

	_, err = executeCmd(t, app, "history", "show", id)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHistory_ListEmpty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved itineraries.")
}

func TestHistory_ListLimit(t *testing.T) {
	app := testApp(t)
	savedID(t, app)
	savedID(t, app)

	out, err := executeCmd(t, app, "history", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Porto"))

	_, err = executeCmd(t, app, "history", "list", "--limit", "-1")
	require.Error(t, err)
}

func TestHistory_ShowJSONSkipsHeader(t *testing.T) {
	app := testApp(t)
	id := savedID(t, app)

	out, err := executeCmd(t, app, "history", "show", id, "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Porto", got["destination"])
}

// --- profile ---

func TestProfile_ShowFallsBackToConfig(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "profile", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "08:00–22:00")
	assert.Contains(t, out, "30 min")
	assert.Contains(t, out, "source: config defaults")
}

func TestProfile_SetThenShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "profile", "set", "--buffer", "45", "--max-per-day", "3", "--interest", "art, food", "--max-daily-spend", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "45 min")
	assert.Contains(t, out, "Changes apply to the next plan run.")

	out, err = executeCmd(t, app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "45 min")
	assert.Contains(t, out, "art, food")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "source: saved profile")

	p, err := app.Profiles.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, p.MaxPerDay)
	assert.Equal(t, domain.MustTimeOfDay("08:00"), p.DayStart, "unchanged flags keep their value")
}

func TestProfile_SetRejectsInvalidSettings(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "set", "--soft-cap", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid planner profile")

	_, err = executeCmd(t, app, "profile", "set", "--day-start", "25:00")
	require.Error(t, err)

	_, err = app.Profiles.Get(t.Context())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
