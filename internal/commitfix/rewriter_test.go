package commitfix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvetter/ordnung/internal/commitfix"
)

func TestBuildMessageFilterScript(testInstance *testing.T) {
	acceptedChanges := []commitfix.MessageChange{
		{OriginalSubject: "fix typo", CorrectedSubject: "Fix typo"},
		{OriginalSubject: `say "hello" for $5`, CorrectedSubject: "Say hello"},
	}

	filterScript := commitfix.BuildMessageFilterScript(acceptedChanges)

	require.True(testInstance, strings.HasPrefix(filterScript, "#!/bin/bash\n"))
	require.Contains(testInstance, filterScript, `MSG="$(cat)"`)
	require.Contains(testInstance, filterScript, `case "$MSG" in`)

	// One case arm per accepted change plus the pass-through default arm.
	require.Equal(testInstance, len(acceptedChanges)+1, strings.Count(filterScript, ";;"))
	require.Contains(testInstance, filterScript, "  *)\n    echo \"$MSG\"\n    ;;\nesac\n")

	// Subjects with shell metacharacters are quoted so the dollar sign and
	// quotes reach the case match literally.
	require.Contains(testInstance, filterScript, `'say "hello" for $5'`)
	require.NotContains(testInstance, filterScript, "\nsay \"hello\" for $5)")
}

func TestBuildMessageFilterScriptWithoutChangesIsPassThrough(testInstance *testing.T) {
	filterScript := commitfix.BuildMessageFilterScript(nil)

	require.Equal(testInstance, 1, strings.Count(filterScript, ";;"))
	require.Contains(testInstance, filterScript, "esac\n")
}
