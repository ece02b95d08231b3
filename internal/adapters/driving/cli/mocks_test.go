package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// mockActionRunner implements driving.ActionRunner and records executions.
type mockActionRunner struct {
	executions []domain.Execution
	result     *domain.RunResult
	err        error
}

func (m *mockActionRunner) Run(_ context.Context, exec domain.Execution) (*domain.RunResult, error) {
	m.executions = append(m.executions, exec)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RunResult{Outcomes: []domain.ItemOutcome{{Index: 0}}}, nil
}

func (m *mockActionRunner) last() domain.Execution {
	if len(m.executions) == 0 {
		return domain.Execution{}
	}
	return m.executions[len(m.executions)-1]
}

// recordsResult wraps records into a single successful outcome.
func recordsResult(records ...domain.OutputRecord) *domain.RunResult {
	return &domain.RunResult{Outcomes: []domain.ItemOutcome{{Index: 0, Records: records}}}
}

// mockOptionsLoader implements driving.OptionsLoader.
type mockOptionsLoader struct {
	tags           []domain.Option
	correspondents []domain.Option
	documentTypes  []domain.Option
	err            error
}

func (m *mockOptionsLoader) Tags(_ context.Context) ([]domain.Option, error) {
	return m.tags, m.err
}

func (m *mockOptionsLoader) Correspondents(_ context.Context) ([]domain.Option, error) {
	return m.correspondents, m.err
}

func (m *mockOptionsLoader) DocumentTypes(_ context.Context) ([]domain.Option, error) {
	return m.documentTypes, m.err
}

// mockSettingsService implements driving.SettingsService in memory.
type mockSettingsService struct {
	settings    domain.Settings
	saved       *domain.Settings
	connection  [2]string
	validateErr error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultSettings()}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Effective() (*domain.Settings, error) {
	return m.Get()
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	s := *settings
	m.saved = &s
	m.settings = s
	return nil
}

func (m *mockSettingsService) SetConnection(domainURL, token string) error {
	m.connection = [2]string{domainURL, token}
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// testServices holds the fakes wired into the CLI for one test.
type testServices struct {
	actions  *mockActionRunner
	options  *mockOptionsLoader
	settings *mockSettingsService
	binaries *memory.BinaryStore
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	old := Services{
		Actions:  actionRunner,
		Options:  optionsLoader,
		Settings: settingsService,
		Binaries: binaryStore,
	}
	ts := &testServices{
		actions:  &mockActionRunner{},
		options:  &mockOptionsLoader{},
		settings: newMockSettingsService(),
		binaries: memory.NewBinaryStore(),
	}
	SetServices(Services{
		Actions:  ts.actions,
		Options:  ts.options,
		Settings: ts.settings,
		Binaries: ts.binaries,
	})
	t.Cleanup(func() { SetServices(old) })
	return ts
}

// executeCommand runs the root command with args and returns the combined
// output. Flags are reset afterwards so tests do not leak values.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
