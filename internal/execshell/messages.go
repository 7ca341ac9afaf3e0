package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitStatusSubcommandNameConstant     = "status"
	gitLogSubcommandNameConstant        = "log"
	gitFilterBranchSubcommandConstant   = "filter-branch"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitUpdateRefSubcommandNameConstant  = "update-ref"
	gitReflogSubcommandNameConstant     = "reflog"
	gitGarbageCollectSubcommandConstant = "gc"
	gitInsideWorkTreeFlagConstant       = "--is-inside-work-tree"
	gitUpdateRefDeleteFlagConstant      = "-d"
	gitUpdateRefDeleteArgumentsConstant = 3
)

const (
	gitWorkTreeStartTemplateConstant        = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant      = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant      = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplate     = "Could not analyze %s: %s"
	gitStatusStartTemplateConstant          = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant        = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant        = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplate       = "Unable to review working tree status in %s: %s"
	gitLogStartTemplateConstant             = "Listing commit history in %s"
	gitLogSuccessTemplateConstant           = "Listed commit history in %s"
	gitLogFailureTemplateConstant           = "Failed to list commit history in %s (exit code %d%s)"
	gitLogExecutionFailureTemplate          = "Unable to list commit history in %s: %s"
	gitFilterBranchStartTemplateConstant    = "Rewriting commit messages in %s"
	gitFilterBranchSuccessTemplateConstant  = "Rewrote commit messages in %s"
	gitFilterBranchFailureTemplateConstant  = "Failed to rewrite commit messages in %s (exit code %d%s)"
	gitFilterBranchExecutionFailureTemplate = "Unable to rewrite commit messages in %s: %s"
	gitForEachRefStartTemplateConstant      = "Listing backup references in %s"
	gitForEachRefSuccessTemplateConstant    = "Listed backup references in %s"
	gitForEachRefFailureTemplateConstant    = "Failed to list backup references in %s (exit code %d%s)"
	gitForEachRefExecutionFailureTemplate   = "Unable to list backup references in %s: %s"
	gitUpdateRefStartTemplateConstant       = "Removing reference %s in %s"
	gitUpdateRefSuccessTemplateConstant     = "Removed reference %s in %s"
	gitUpdateRefFailureTemplateConstant     = "Failed to remove reference %s in %s (exit code %d%s)"
	gitUpdateRefExecutionFailureTemplate    = "Unable to remove reference %s in %s: %s"
	gitReflogStartTemplateConstant          = "Expiring reflog entries in %s"
	gitReflogSuccessTemplateConstant        = "Expired reflog entries in %s"
	gitReflogFailureTemplateConstant        = "Failed to expire reflog entries in %s (exit code %d%s)"
	gitReflogExecutionFailureTemplate       = "Unable to expire reflog entries in %s: %s"
	gitGCStartTemplateConstant              = "Compacting repository storage in %s"
	gitGCSuccessTemplateConstant            = "Compacted repository storage in %s"
	gitGCFailureTemplateConstant            = "Failed to compact repository storage in %s (exit code %d%s)"
	gitGCExecutionFailureTemplate           = "Unable to compact repository storage in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		if containsArgument(command.Details.Arguments, gitInsideWorkTreeFlagConstant) {
			return formatter.describeRepositoryMessage(command, result, failure, stage,
				gitWorkTreeStartTemplateConstant, gitWorkTreeSuccessTemplateConstant,
				gitWorkTreeFailureTemplateConstant, gitWorkTreeExecutionFailureTemplate)
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.describeRepositoryMessage(command, result, failure, stage,
			gitStatusStartTemplateConstant, gitStatusSuccessTemplateConstant,
			gitStatusFailureTemplateConstant, gitStatusExecutionFailureTemplate)
	case gitLogSubcommandNameConstant:
		return formatter.describeRepositoryMessage(command, result, failure, stage,
			gitLogStartTemplateConstant, gitLogSuccessTemplateConstant,
			gitLogFailureTemplateConstant, gitLogExecutionFailureTemplate)
	case gitFilterBranchSubcommandConstant:
		return formatter.describeRepositoryMessage(command, result, failure, stage,
			gitFilterBranchStartTemplateConstant, gitFilterBranchSuccessTemplateConstant,
			gitFilterBranchFailureTemplateConstant, gitFilterBranchExecutionFailureTemplate)
	case gitForEachRefSubcommandNameConstant:
		return formatter.describeRepositoryMessage(command, result, failure, stage,
			gitForEachRefStartTemplateConstant, gitForEachRefSuccessTemplateConstant,
			gitForEachRefFailureTemplateConstant, gitForEachRefExecutionFailureTemplate)
	case gitUpdateRefSubcommandNameConstant:
		return formatter.describeUpdateRefMessage(command, result, failure, stage)
	case gitReflogSubcommandNameConstant:
		return formatter.describeRepositoryMessage(command, result, failure, stage,
			gitReflogStartTemplateConstant, gitReflogSuccessTemplateConstant,
			gitReflogFailureTemplateConstant, gitReflogExecutionFailureTemplate)
	case gitGarbageCollectSubcommandConstant:
		return formatter.describeRepositoryMessage(command, result, failure, stage,
			gitGCStartTemplateConstant, gitGCSuccessTemplateConstant,
			gitGCFailureTemplateConstant, gitGCExecutionFailureTemplate)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeRepositoryMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeUpdateRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < gitUpdateRefDeleteArgumentsConstant || strings.TrimSpace(arguments[1]) != gitUpdateRefDeleteFlagConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	reference := strings.TrimSpace(arguments[2])
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitUpdateRefStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitUpdateRefSuccessTemplateConstant, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitUpdateRefFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitUpdateRefExecutionFailureTemplate, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
