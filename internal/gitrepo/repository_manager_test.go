package gitrepo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tvetter/ordnung/internal/execshell"
	"github.com/tvetter/ordnung/internal/gitrepo"
)

const (
	testRepositoryPathConstant       = "/tmp/example-repo"
	logCommandKeyConstant            = "log --format=%H|||%s HEAD"
	statusCommandKeyConstant         = "status --porcelain"
	revParseCommandKeyConstant       = "rev-parse --is-inside-work-tree"
	forEachRefCommandKeyConstant     = "for-each-ref --format=%(refname) refs/original/"
	reflogCommandKeyConstant         = "reflog expire --expire=now --all"
	garbageCollectCommandKeyConstant = "gc --prune=now"
)

type scriptedGitExecutor struct {
	responses        map[string]execshell.ExecutionResult
	failures         map[string]error
	executedCommands []string
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	commandKey := strings.Join(details.Arguments, " ")
	executor.executedCommands = append(executor.executedCommands, commandKey)
	if failure, failed := executor.failures[commandKey]; failed {
		return execshell.ExecutionResult{}, failure
	}
	if response, known := executor.responses[commandKey]; known {
		return response, nil
	}
	return execshell.ExecutionResult{}, nil
}

func TestRepositoryManagerListCommitsOrdering(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: map[string]execshell.ExecutionResult{
		logCommandKeyConstant: {StandardOutput: "ccc|||Third subject\nbbb|||Second subject\naaa|||First subject\n"},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	commits, listError := manager.ListCommits(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []gitrepo.Commit{
		{Hash: "aaa", Subject: "First subject"},
		{Hash: "bbb", Subject: "Second subject"},
		{Hash: "ccc", Subject: "Third subject"},
	}, commits)
}

func TestRepositoryManagerListCommitsPreservesSeparatorInSubject(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: map[string]execshell.ExecutionResult{
		logCommandKeyConstant: {StandardOutput: "aaa|||Subject with ||| inside\n"},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	commits, listError := manager.ListCommits(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, listError)
	require.Len(testInstance, commits, 1)
	require.Equal(testInstance, "Subject with ||| inside", commits[0].Subject)
}

func TestRepositoryManagerListCommitsEmptyRepository(testInstance *testing.T) {
	executor := &scriptedGitExecutor{failures: map[string]error{
		logCommandKeyConstant: execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit},
			Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: your current branch 'main' does not have any commits yet"},
		},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	commits, listError := manager.ListCommits(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, listError)
	require.Empty(testInstance, commits)
}

func TestRepositoryManagerListCommitsExecutionFailure(testInstance *testing.T) {
	executor := &scriptedGitExecutor{failures: map[string]error{
		logCommandKeyConstant: execshell.CommandExecutionError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit},
			Cause:   errors.New("executable not found"),
		},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	_, listError := manager.ListCommits(context.Background(), testRepositoryPathConstant)
	require.Error(testInstance, listError)
	require.Contains(testInstance, listError.Error(), "failed to list commits")
}

func TestRepositoryManagerListCommitsSkipsMalformedLines(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: map[string]execshell.ExecutionResult{
		logCommandKeyConstant: {StandardOutput: "bbb|||Second subject\ngarbage without separator\naaa|||First subject\n"},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	commits, listError := manager.ListCommits(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []gitrepo.Commit{
		{Hash: "aaa", Subject: "First subject"},
		{Hash: "bbb", Subject: "Second subject"},
	}, commits)
}

func TestRepositoryManagerCheckCleanWorktree(testInstance *testing.T) {
	testCases := []struct {
		name          string
		statusOutput  string
		expectedClean bool
	}{
		{name: "clean_worktree", statusOutput: "", expectedClean: true},
		{name: "dirty_worktree", statusOutput: " M internal/service.go\n", expectedClean: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &scriptedGitExecutor{responses: map[string]execshell.ExecutionResult{
				statusCommandKeyConstant: {StandardOutput: testCase.statusOutput},
			}}

			manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
			require.NoError(testInstance, managerError)

			worktreeClean, checkError := manager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)
			require.NoError(testInstance, checkError)
			require.Equal(testInstance, testCase.expectedClean, worktreeClean)
		})
	}
}

func TestRepositoryManagerIsGitRepository(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: map[string]execshell.ExecutionResult{
		revParseCommandKeyConstant: {StandardOutput: "true\n"},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	require.True(testInstance, manager.IsGitRepository(context.Background(), testRepositoryPathConstant))
}

func TestRepositoryManagerRewriteMessagesRunsCleanupSequence(testInstance *testing.T) {
	executor := &scriptedGitExecutor{responses: map[string]execshell.ExecutionResult{
		forEachRefCommandKeyConstant: {StandardOutput: "refs/original/refs/heads/main\n"},
	}}

	manager, managerError := gitrepo.NewRepositoryManager(executor, zap.NewNop())
	require.NoError(testInstance, managerError)

	rewriteError := manager.RewriteMessages(context.Background(), testRepositoryPathConstant, "#!/bin/bash\ncat\n")
	require.NoError(testInstance, rewriteError)

	require.Len(testInstance, executor.executedCommands, 5)
	require.True(testInstance, strings.HasPrefix(executor.executedCommands[0], "filter-branch -f --msg-filter "))
	require.True(testInstance, strings.HasSuffix(executor.executedCommands[0], " -- --all"))
	require.Equal(testInstance, forEachRefCommandKeyConstant, executor.executedCommands[1])
	require.Equal(testInstance, "update-ref -d refs/original/refs/heads/main", executor.executedCommands[2])
	require.Equal(testInstance, reflogCommandKeyConstant, executor.executedCommands[3])
	require.Equal(testInstance, garbageCollectCommandKeyConstant, executor.executedCommands[4])
}
