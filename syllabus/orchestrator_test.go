package syllabus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/config"
	"github.com/Cortexa-LLC/mcp/src/labsyllabus/document"
)

type stubFallback struct {
	res   Result
	err   error
	calls int
	text  string
}

func (f *stubFallback) Extract(_ context.Context, text string) (Result, error) {
	f.calls++
	f.text = text
	return f.res, f.err
}

type stubSource struct {
	pages []document.Page
	err   error
}

func (s stubSource) Load(context.Context, string) ([]document.Page, error) {
	return s.pages, s.err
}

var fallbackResult = Result{Subjects: []Subject{{
	Name:        "Generated",
	Experiments: []Experiment{{ID: 1, Topic: "Exercise on inheritance"}},
}}}

const labText = "SUBJECT CODE: CS301\nData Structures Lab\nUNIT_01: Implement stack operations using arrays\n"

func TestOrchestrator_ExtractText_HeuristicWins(t *testing.T) {
	fb := &stubFallback{res: fallbackResult}
	o := New(config.Default(), WithFallback(fb))

	res := o.ExtractText(context.Background(), labText, true)

	require.Len(t, res.Subjects, 1)
	assert.Equal(t, "Data Structures Lab", res.Subjects[0].Name)
	assert.Zero(t, fb.calls, "fallback must not run when heuristics found something")
}

func TestOrchestrator_ExtractText_FallbackOnlyWhenAsked(t *testing.T) {
	fb := &stubFallback{res: fallbackResult}
	o := New(config.Default(), WithFallback(fb))

	res := o.ExtractText(context.Background(), "nothing recognisable", false)
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Subjects)
	assert.Zero(t, fb.calls)

	res = o.ExtractText(context.Background(), "nothing recognisable", true)
	require.Len(t, res.Subjects, 1)
	assert.Equal(t, "Generated", res.Subjects[0].Name)
	assert.Equal(t, 1, fb.calls)
	assert.Equal(t, "nothing recognisable", fb.text)
}

func TestOrchestrator_ExtractText_NoFallbackInjected(t *testing.T) {
	o := New(config.Default())
	assert.False(t, o.HasFallback())

	res := o.ExtractText(context.Background(), "Department: Mechanical\nnothing else", true)
	assert.True(t, res.Empty())
	assert.Equal(t, "Mechanical", res.Branch)
}

func TestOrchestrator_FallbackFailureDegrades(t *testing.T) {
	fb := &stubFallback{err: errors.New("quota exceeded")}
	o := New(config.Default(), WithFallback(fb))

	res := o.ExtractText(context.Background(), "Branch: Civil\n", true)

	assert.True(t, res.Empty())
	assert.NotNil(t, res.Subjects)
	assert.Equal(t, "Civil", res.Branch)
	assert.Equal(t, 1, fb.calls)
}

func TestOrchestrator_ExtractDocument_StructuralFirst(t *testing.T) {
	pages := []document.Page{
		unitPage(1, "Physics Lab", "2018508", document.Row{"UNIT - 1", "Verify Ohm's law"}),
	}
	// The page text would also satisfy the textual strategy; the table wins.
	pages[0].Text += "\nUNIT_07: Determine the value of acceleration due to gravity"

	res := New(config.Default()).ExtractDocument(context.Background(), pages, false)

	require.Len(t, res.Subjects, 1)
	require.Len(t, res.Subjects[0].Experiments, 1)
	assert.Equal(t, "Practical: Verify Ohm's law", res.Subjects[0].Experiments[0].Description)
}

func TestOrchestrator_ExtractDocument_TextFirstWhenConfigured(t *testing.T) {
	pages := []document.Page{
		unitPage(1, "Physics Lab", "2018508", document.Row{"UNIT - 1", "Verify Ohm's law"}),
	}
	pages[0].Text += "\nUNIT_07: Determine the value of acceleration due to gravity"

	assert.Equal(t, []string{"structural", "textual"}, New(config.Default()).Strategies())

	cfg := config.Default()
	cfg.Strategies = []string{"textual", "structural"}
	res := New(cfg).ExtractDocument(context.Background(), pages, false)

	require.Len(t, res.Subjects, 1)
	require.NotEmpty(t, res.Subjects[0].Experiments)
	assert.Equal(t, "Determine the value of acceleration due to gravity", res.Subjects[0].Experiments[0].Topic)
}

func TestOrchestrator_ExtractDocument_FallsThroughToTextual(t *testing.T) {
	pages := []document.Page{{Number: 1, Text: labText}}

	res := New(config.Default()).ExtractDocument(context.Background(), pages, false)

	require.Len(t, res.Subjects, 1)
	assert.Equal(t, "CS301", res.Subjects[0].Code)
}

func TestOrchestrator_ConfiguredOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Strategies = []string{"textual", "bogus", "structural"}

	o := New(cfg)
	assert.Equal(t, []string{"textual", "structural"}, o.Strategies())

	o = New(cfg, WithStrategies(StructuralStrategy{}))
	assert.Equal(t, []string{"structural"}, o.Strategies())
}

func TestOrchestrator_ExtractFrom(t *testing.T) {
	o := New(config.Default())

	res, err := o.ExtractFrom(context.Background(), stubSource{pages: []document.Page{{Text: labText}}}, "lab.txt", false)
	require.NoError(t, err)
	assert.Len(t, res.Subjects, 1)

	res, err = o.ExtractFrom(context.Background(), stubSource{err: document.ErrUnsupportedFormat}, "lab.png", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentUnreadable)
	assert.ErrorIs(t, err, document.ErrUnsupportedFormat)
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Subjects)
}

func TestOrchestrator_EmptyInput(t *testing.T) {
	o := New(nil)
	for _, res := range []Result{
		o.ExtractText(context.Background(), "", false),
		o.ExtractDocument(context.Background(), nil, false),
	} {
		assert.Equal(t, "", res.Branch)
		assert.NotNil(t, res.Subjects)
		assert.Empty(t, res.Subjects)
	}
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName(" Textual ", 2)
	require.NoError(t, err)
	assert.Equal(t, "textual", s.Name())

	_, err = StrategyByName("ocr", 2)
	assert.Error(t, err)
}

func TestMapOrdered_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := mapOrdered(ctx, 5, 1, func(i int) int { return i + 1 })
	assert.Equal(t, []int{0, 0, 0, 0, 0}, out)
}
