package timeline

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/tvetter/ordnung/internal/utils/path"
)

const (
	commandUseConstant                = "timeline <csv>"
	commandShortDescriptionConstant   = "Summarize timeline CSV activity by month"
	commandLongDescriptionConstant    = "timeline groups activity records from a timeline CSV export by month and prints totals for distance, duration, visits, and per-type activity counts."
	outputFlagNameConstant            = "output"
	outputFlagDescriptionConstant     = "Write the monthly summary to this file as well"
	monthFlagNameConstant             = "month"
	monthFlagDescriptionConstant      = "Print a detailed per-record listing for one month (YYYY-MM)"
	detailsFlagNameConstant           = "details"
	detailsFlagDescriptionConstant    = "Write the detailed month listing to this file as well"
	readingFileTemplateConstant       = "Reading %s...\n"
	openTimelineErrorTemplateConstant = "failed to open timeline file %s: %w"
	writeReportErrorTemplateConstant  = "failed to write report to %s: %w"
	summarySavedTemplateConstant      = "\n\nSummary saved to %s\n"
	detailsSavedTemplateConstant      = "\nDetailed activities saved to %s\n"
	reportFilePermissionsConstant     = 0o644
	reportBuiltMessageConstant        = "timeline report built"
	timelinePathFieldConstant         = "timeline_path"
	monthCountFieldConstant           = "month_count"
)

// CommandConfiguration captures persisted configuration for the timeline command.
type CommandConfiguration struct {
	OutputPath string `mapstructure:"output"`
}

// DefaultCommandConfiguration returns baseline configuration values for timeline.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// Sanitize trims configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.OutputPath = strings.TrimSpace(configuration.OutputPath)
	return sanitized
}

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the timeline command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	FileSystem            afero.Fs
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the timeline command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(outputFlagNameConstant, "", outputFlagDescriptionConstant)
	command.Flags().String(monthFlagNameConstant, "", monthFlagDescriptionConstant)
	command.Flags().String(detailsFlagNameConstant, "", detailsFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	fileSystem := builder.resolveFileSystem()
	logger := builder.resolveLogger()
	homeExpander := pathutils.NewHomeExpander()

	outputPath, outputFlagError := command.Flags().GetString(outputFlagNameConstant)
	if outputFlagError != nil {
		return outputFlagError
	}
	if len(outputPath) == 0 {
		outputPath = configuration.OutputPath
	}

	detailMonth, monthFlagError := command.Flags().GetString(monthFlagNameConstant)
	if monthFlagError != nil {
		return monthFlagError
	}
	detailsPath, detailsFlagError := command.Flags().GetString(detailsFlagNameConstant)
	if detailsFlagError != nil {
		return detailsFlagError
	}

	timelinePath := homeExpander.Expand(arguments[0])
	outputWriter := command.OutOrStdout()

	fmt.Fprintf(outputWriter, readingFileTemplateConstant, timelinePath)

	timelineFile, openError := fileSystem.Open(timelinePath)
	if openError != nil {
		return fmt.Errorf(openTimelineErrorTemplateConstant, timelinePath, openError)
	}
	defer timelineFile.Close()

	summaries, aggregateError := AggregateByMonth(timelineFile)
	if aggregateError != nil {
		return aggregateError
	}

	logger.Debug(reportBuiltMessageConstant,
		zap.String(timelinePathFieldConstant, timelinePath),
		zap.Int(monthCountFieldConstant, len(summaries)),
	)

	summaryReport := RenderMonthlySummary(summaries)
	fmt.Fprintln(outputWriter, summaryReport)

	if len(outputPath) > 0 {
		expandedOutputPath := homeExpander.Expand(outputPath)
		if writeError := afero.WriteFile(fileSystem, expandedOutputPath, []byte(summaryReport), reportFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(writeReportErrorTemplateConstant, expandedOutputPath, writeError)
		}
		fmt.Fprintf(outputWriter, summarySavedTemplateConstant, expandedOutputPath)
	}

	if len(detailMonth) == 0 {
		return nil
	}

	detailReport, monthKnown := RenderMonthDetails(summaries, detailMonth)
	if !monthKnown {
		WriteUnknownMonthNotice(outputWriter, detailMonth)
		return nil
	}

	fmt.Fprintln(outputWriter, detailReport)

	if len(detailsPath) > 0 {
		expandedDetailsPath := homeExpander.Expand(detailsPath)
		if writeError := afero.WriteFile(fileSystem, expandedDetailsPath, []byte(detailReport), reportFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(writeReportErrorTemplateConstant, expandedDetailsPath, writeError)
		}
		fmt.Fprintf(outputWriter, detailsSavedTemplateConstant, expandedDetailsPath)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveFileSystem() afero.Fs {
	if builder.FileSystem == nil {
		return afero.NewOsFs()
	}
	return builder.FileSystem
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
