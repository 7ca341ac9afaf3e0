package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/execshell"
)

func TestCommandMessageFormatterDescribesGitSubcommands(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		arguments       []string
		expectedMessage string
	}{
		{
			name:            "work_tree_probe",
			arguments:       []string{"rev-parse", "--is-inside-work-tree"},
			expectedMessage: "Analyzing repository at /tmp/repo",
		},
		{
			name:            "status",
			arguments:       []string{"status", "--porcelain"},
			expectedMessage: "Reviewing working tree status in /tmp/repo",
		},
		{
			name:            "filter_branch",
			arguments:       []string{"filter-branch", "-f", "--msg-filter", "/tmp/filter.sh", "--", "--all"},
			expectedMessage: "Rewriting commit messages in /tmp/repo",
		},
		{
			name:            "update_ref_deletion",
			arguments:       []string{"update-ref", "-d", "refs/original/refs/heads/main"},
			expectedMessage: "Removing reference refs/original/refs/heads/main in /tmp/repo",
		},
		{
			name:            "generic_fallback",
			arguments:       []string{"push"},
			expectedMessage: "Running git push (in /tmp/repo)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: testCase.arguments, WorkingDirectory: "/tmp/repo"},
			}
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(command))
		})
	}
}
