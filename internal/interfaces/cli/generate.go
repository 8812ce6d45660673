package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	app "outreach/internal/application/outreach"
	"outreach/internal/domain/outreach"
	"outreach/internal/infrastructure/persistence/jsonfile"
	"outreach/internal/infrastructure/spreadsheet"
	"outreach/internal/logger"
)

const (
	previewRows      = 3
	emailPreviewRows = 10
)

var separator = strings.Repeat("=", 80)

// GenerateCommand walks the operator through loading a contact sheet,
// generating one email per eligible contact and saving the results.
type GenerateCommand struct {
	Prompter    *Prompter
	Loader      *spreadsheet.Loader
	Processor   *app.ProcessContactsUseCase
	Runs        app.RunRepository
	ResultsPath string
	Log         *logger.Logger
}

func (c *GenerateCommand) Run(ctx context.Context) error {
	p := c.Prompter

	path, err := p.Ask("Enter the path to your contacts spreadsheet (CSV or Excel): ")
	if err != nil {
		return fmt.Errorf("read spreadsheet path: %w", err)
	}

	info := outreach.DefaultTemplateInfo()
	if p.Confirm("Do you want to customize the email template? (yes/no): ") {
		if info, err = c.customizeTemplate(info); err != nil {
			return err
		}
	}

	sheet, err := c.Loader.Load(path)
	if err != nil {
		return fmt.Errorf("error loading contacts: %w", err)
	}
	p.Printf("Loaded %d contacts from the spreadsheet\n", len(sheet.Contacts))
	c.printPreview(sheet)

	if missing := sheet.MissingColumns(outreach.RequiredColumns); len(missing) > 0 {
		p.Printf("ERROR: Missing required columns: %s\n", strings.Join(missing, ", "))
		p.Printf("Available columns: %s\n", strings.Join(sheet.Columns, ", "))
		p.Println("Please check your spreadsheet and try again.")
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	p.Println("Email column preview:")
	for _, contact := range sheet.Preview(emailPreviewRows) {
		p.Printf("  %s\n", contact.Email())
	}

	runID := outreach.NewRunID()
	log := c.Log.WithRun(runID)
	started := time.Now()

	p.Println("Generating personalized emails...")
	results, summary, err := c.Processor.Execute(ctx, sheet, info)
	p.Println(summary.String())
	if err != nil {
		return err
	}
	p.Printf("Generated %d emails\n", len(results))

	outputPath, err := p.AskDefault(
		fmt.Sprintf("Enter path to save generated emails (default: %s): ", c.ResultsPath),
		c.ResultsPath,
	)
	if err != nil {
		return fmt.Errorf("read output path: %w", err)
	}

	digestPath, err := jsonfile.Save(outputPath, results)
	if err != nil {
		return fmt.Errorf("save generated emails: %w", err)
	}
	p.Printf("Emails saved to %s and %s\n", outputPath, digestPath)

	recordRun(ctx, c.Runs, outreach.NewGenerationRun(runID, path, started, results, summary), log)

	if len(results) > 0 && p.Confirm("Would you like to see a sample email? (yes/no): ") {
		sample := results[0]
		p.Printf("\n%s\n\n", separator)
		p.Printf("TO: %s <%s>\n", sample.Contact, sample.EmailAddress)
		p.Printf("SUBJECT: %s\n\n", sample.Subject)
		p.Println(sample.Body)
		p.Printf("\n%s\n", separator)
	}

	return nil
}

func (c *GenerateCommand) customizeTemplate(info outreach.TemplateInfo) (outreach.TemplateInfo, error) {
	p := c.Prompter
	p.Println("\n=== Email Template Customization ===")

	var err error
	if info.Description, err = p.AskDefault("Enter a brief description of your organization/purpose: ", info.Description); err != nil {
		return info, err
	}
	if info.Tone, err = p.AskDefault("Enter the desired tone of the email: ", info.Tone); err != nil {
		return info, err
	}
	if info.KeyPoints, err = p.AskDefault("Enter key points to include (comma separated): ", info.KeyPoints); err != nil {
		return info, err
	}

	p.Println("Enter your email template. Use $FIRST_NAME, $LAST_NAME, $TITLE, $COMPANY")
	p.Println("for personalization and $EMAIL_BODY where the generated body goes.")
	template, err := p.AskBlock("Template:")
	if err != nil {
		return info, err
	}
	if strings.TrimSpace(template) != "" {
		info.Template = template
	}

	c.Log.Info().Strs("placeholders", outreach.Placeholders(info.Template)).Msg("Template customized")
	return info, nil
}

func (c *GenerateCommand) printPreview(sheet *outreach.Sheet) {
	p := c.Prompter
	p.Println("\nPreview of loaded data:")
	for _, contact := range sheet.Preview(previewRows) {
		p.Printf("  %s <%s> | %s | %s\n", contact.FullName(), contact.Email(), contact.Title(), contact.Company())
	}
	p.Printf("\nColumns found: %s\n", strings.Join(sheet.Columns, ", "))
	for _, w := range sheet.Warnings {
		p.Printf("Warning: %s\n", w)
	}
}

// recordRun stores the run in history. Failures are logged and never fail
// the command.
func recordRun(ctx context.Context, runs app.RunRepository, run *outreach.Run, log *logger.Logger) {
	if runs == nil {
		return
	}
	if err := runs.Save(ctx, run); err != nil {
		log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record run history")
		return
	}
	log.Debug().Str("kind", string(run.Kind)).Msg("Run recorded")
}
