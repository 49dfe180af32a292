package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/brandvoice/internal/auth"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/alexanderramin/brandvoice/internal/service"
	"github.com/alexanderramin/brandvoice/internal/testutil"
)

// scriptedLLM replays responses in order; the last one repeats. With no
// responses every call fails.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	calls     []llm.GenerateRequest
}

func (s *scriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if len(s.responses) == 0 {
		return nil, errors.New("connection refused")
	}
	text := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return &llm.GenerateResponse{Text: text, Model: "test"}, nil
}

func (s *scriptedLLM) Available(context.Context) bool { return len(s.responses) > 0 }

func (s *scriptedLLM) lastCall(t *testing.T) llm.GenerateRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.calls)
	return s.calls[len(s.calls)-1]
}

// testApp wires the wizards over a scripted client and an in-memory DB.
func testApp(t *testing.T, responses ...string) (*App, *scriptedLLM) {
	t.Helper()
	database := testutil.NewTestDB(t)
	client := &scriptedLLM{responses: responses}

	overrides := repository.NewSQLitePromptOverrideRepo(database)
	catalog, err := prompt.DefaultCatalog()
	require.NoError(t, err)
	catalog.WithOverrides(overrides)

	return &App{
		Tone:    intelligence.NewToneService(client, catalog, nil),
		Message: intelligence.NewMessageService(client, catalog, nil),
		Prompts: service.NewPromptService(catalog, overrides),
		Issuer:  auth.NewIssuer("cli-test-secret-0123456789abcdef", time.Hour),
	}, client
}

// executeCmd runs a cobra command with input on stdin and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestToneCmd_FallbackRunCompletes(t *testing.T) {
	app, client := testApp(t)

	out, err := executeCmd(t, app, "1\n2\n3\nnever pushy\n5\n", "tone", "--name", "Acme", "--industry", "tools")
	require.NoError(t, err)

	assert.Contains(t, out, "[1/5]")
	assert.Contains(t, out, "[5/5]")
	assert.Contains(t, out, intelligence.ToneDeduplicator.Pool[0].Question)
	assert.Contains(t, out, "TONE OF VOICE")
	assert.Contains(t, out, "FALLBACK")

	synth := client.lastCall(t)
	assert.Equal(t, llm.TaskToneSynthesis, synth.Task)
	assert.Contains(t, synth.UserPrompt, intelligence.ToneDeduplicator.Pool[0].Suggestions[0])
	assert.Contains(t, synth.UserPrompt, "never pushy")
}

func TestToneCmd_ModelQuestionsAndSynthesis(t *testing.T) {
	app, _ := testApp(t,
		`{"question":"Q one?","suggestions":["a","b"]}`,
		`{"question":"Q two?","suggestions":["a","b"]}`,
		`{"question":"Q three?","suggestions":["a","b"]}`,
		`{"question":"Q four?","suggestions":["a","b"]}`,
		`{"question":"Q five?","suggestions":["a","b"]}`,
		`{"archetypes":["The Sage","The Hero"],"toneOfVoice":{"keyTraits":"Clear","communicationStyle":"Warm","examples":"Hi.","guidelines":"Be brief."}}`,
	)

	out, err := executeCmd(t, app, "a\nb\nc\nd\ne\n", "tone", "--name", "Acme")
	require.NoError(t, err)

	for _, q := range []string{"Q one?", "Q two?", "Q three?", "Q four?", "Q five?"} {
		assert.Contains(t, out, q)
	}
	assert.Contains(t, out, "The Sage")
	assert.Contains(t, out, "The Hero")
	assert.Contains(t, out, "Be brief.")
	assert.NotContains(t, out, "FALLBACK")
}

func TestToneCmd_RequiresName(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "", "tone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
}

func TestToneCmd_CancelledInput(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "first answer\n", "tone", "--name", "Acme")
	assert.ErrorIs(t, err, errInputCancelled)
}

func TestToneCmd_NotConfigured(t *testing.T) {
	_, err := executeCmd(t, &App{}, "", "tone", "--name", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestMessageCmd_GreetingRepeatsQuestion(t *testing.T) {
	app, client := testApp(t)

	out, err := executeCmd(t, app, "hello\n1\n2\n3\n4\n5\n", "message",
		"--business", "Bakery", "--current", "Fresh bread weekly.")
	require.NoError(t, err)

	first := intelligence.MessageDeduplicator.Pool[0].Question
	assert.Equal(t, 2, strings.Count(out, first), "greeting should repeat the pending question")
	assert.GreaterOrEqual(t, strings.Count(out, intelligence.MessageDeduplicator.Pool[0].Suggestions[0]), 2,
		"greeting should repeat the pending suggestions")
	assert.Contains(t, out, intelligence.WelcomeMessage)
	assert.Contains(t, out, "CORE MESSAGE")
	assert.Contains(t, out, "Fresh bread weekly.")

	synth := client.lastCall(t)
	assert.Equal(t, llm.TaskMessageRefine, synth.Task)
	assert.Contains(t, synth.UserPrompt, intelligence.MessageDeduplicator.Pool[0].Suggestions[0])
	assert.NotContains(t, synth.UserPrompt, "hello")
}

func TestMessageCmd_PromptAppliesOneEdit(t *testing.T) {
	app, _ := testApp(t, `{"question":"","updatedMessage":"Warm bread, every morning."}`)

	out, err := executeCmd(t, app, "", "message",
		"--business", "Bakery", "--current", "Fresh bread weekly.", "--prompt", "make it warmer")
	require.NoError(t, err)
	assert.Contains(t, out, "Warm bread, every morning.")
}

func TestMessageCmd_RequiresBusiness(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "", "message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"business"`)
}

func TestTokenCmd_MintsVerifiableToken(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "", "token", "--user", "ops-1", "--admin")
	require.NoError(t, err)

	p, err := app.Issuer.Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops-1", p.UserID)
	assert.True(t, p.IsAdmin())
}

func TestTokenCmd_NeedsIssuer(t *testing.T) {
	_, err := executeCmd(t, &App{}, "", "token", "--user", "ops-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BRANDVOICE_JWT_SECRET")
}

func TestPromptsCmd_ListAndShow(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "", "prompts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, prompt.ToneFirstQuestion)
	assert.Contains(t, out, prompt.MessageContextualQuestion)

	out, err = executeCmd(t, app, "", "prompts", "show", prompt.ToneSynthesis)
	require.NoError(t, err)
	assert.Contains(t, out, strings.ToUpper(prompt.ToneSynthesis))

	_, err = executeCmd(t, app, "", "prompts", "show", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestServeCmd_RunsServer(t *testing.T) {
	called := false
	app := &App{Serve: func(ctx context.Context) error {
		called = true
		return nil
	}}
	_, err := executeCmd(t, app, "", "serve")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestArchetypesCmd(t *testing.T) {
	out, err := executeCmd(t, &App{}, "", "archetypes")
	require.NoError(t, err)
	assert.Contains(t, out, "The Sage")
}

func TestLineAsker(t *testing.T) {
	suggestions := []string{"Alpha", "Beta"}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number picks suggestion", "2\n", "Beta"},
		{"out of range is literal", "7\n", "7"},
		{"free text", "  my own words \n", "my own words"},
		{"blank lines skipped", "\n\nGamma\n", "Gamma"},
		{"carriage return", "Delta\r", "Delta"},
		{"no trailing newline", "Epsilon", "Epsilon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := lineAsker{in: strings.NewReader(tt.input), out: &out}.Ask(context.Background(), suggestions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineAsker_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := lineAsker{in: strings.NewReader(""), out: &out}.Ask(context.Background(), nil)
	assert.ErrorIs(t, err, errInputCancelled)
}

func TestRequireAnswer(t *testing.T) {
	assert.Error(t, requireAnswer("   "))
	assert.NoError(t, requireAnswer("ok"))
}
