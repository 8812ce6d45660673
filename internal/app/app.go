package app

import (
	"context"
	"fmt"
	"io"

	"outreach/internal/application/outreach"
	"outreach/internal/infrastructure/config"
	"outreach/internal/infrastructure/llm"
	"outreach/internal/infrastructure/persistence/sqlite"
	"outreach/internal/infrastructure/spreadsheet"
	"outreach/internal/interfaces/cli"
	"outreach/internal/logger"
)

// App wires configuration, history storage and the operator console into the
// generate, send and history commands.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	prompter *cli.Prompter
	out      io.Writer
	runs     *sqlite.RunRepository
}

func NewApp(cfg *config.Config, log *logger.Logger, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		cfg:      cfg,
		log:      log,
		prompter: cli.NewPrompter(in, out),
		out:      out,
	}

	if cfg.HistoryDB != "" {
		runs, err := sqlite.NewRunRepository(cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("sqlite error: %w", err)
		}
		a.runs = runs
	} else {
		log.Debug().Msg("Run history disabled")
	}

	return a, nil
}

func (a *App) Close() error {
	if a.runs == nil {
		return nil
	}
	return a.runs.Close()
}

// history returns the run repository as a port, nil when history is disabled.
func (a *App) history() outreach.RunRepository {
	if a.runs == nil {
		return nil
	}
	return a.runs
}

func (a *App) Generate(ctx context.Context) error {
	textGen, err := llm.New(ctx, a.cfg.LLMProvider, a.cfg.LLMAPIKey(), a.cfg.ModelName)
	if err != nil {
		return fmt.Errorf("llm client error: %w", err)
	}
	a.log.Info().Str("provider", a.cfg.LLMProvider).Msg("LLM client ready")

	generator := outreach.NewGenerateEmailUseCase(textGen, a.log, a.cfg.SubjectPrefix)
	cmd := &cli.GenerateCommand{
		Prompter:    a.prompter,
		Loader:      spreadsheet.NewLoader(a.log),
		Processor:   outreach.NewProcessContactsUseCase(generator, a.log, a.cfg.GenerationPause),
		Runs:        a.history(),
		ResultsPath: a.cfg.ResultsPath,
		Log:         a.log,
	}
	return cmd.Run(ctx)
}

func (a *App) Send(ctx context.Context) error {
	var transport cli.TransportFactory
	switch a.cfg.MailTransport {
	case "gmail":
		transport = cli.GmailTransport(a.prompter, a.cfg.GmailCredentials, a.cfg.GmailToken, a.log)
	default:
		transport = cli.SMTPTransport(a.prompter, a.cfg.CredentialsPath, a.cfg.DefaultSender)
	}

	cmd := &cli.SendCommand{
		Prompter:    a.prompter,
		Transport:   transport,
		Runs:        a.history(),
		ResultsPath: a.cfg.ResultsPath,
		CC:          a.cfg.CC,
		Pause:       a.cfg.SendPause,
		Log:         a.log,
	}
	return cmd.Run(ctx)
}

// History lists recent runs, or shows a single run when id is set.
func (a *App) History(ctx context.Context, id string, limit int) error {
	if a.runs == nil {
		return fmt.Errorf("run history is disabled (HISTORY_DB is empty)")
	}
	cmd := &cli.HistoryCommand{Runs: a.runs, Out: a.out, Limit: limit}
	if id != "" {
		return cmd.Show(ctx, id)
	}
	return cmd.Run(ctx)
}
