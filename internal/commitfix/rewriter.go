package commitfix

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

const (
	scriptHeaderConstant = "#!/bin/bash\nMSG=\"$(cat)\"\ncase \"$MSG\" in\n"
	scriptFooterConstant = "  *)\n    echo \"$MSG\"\n    ;;\nesac\n"
)

// BuildMessageFilterScript renders the bash script handed to
// `git filter-branch --msg-filter`. Each accepted change becomes one quoted
// case arm mapping the original subject to its replacement; unmatched
// messages pass through unchanged.
func BuildMessageFilterScript(acceptedChanges []MessageChange) string {
	var script strings.Builder
	script.WriteString(scriptHeaderConstant)

	for _, acceptedChange := range acceptedChanges {
		script.WriteString("  ")
		script.WriteString(shellquote.Join(acceptedChange.OriginalSubject))
		script.WriteString(")\n    echo ")
		script.WriteString(shellquote.Join(acceptedChange.CorrectedSubject))
		script.WriteString("\n    ;;\n")
	}

	script.WriteString(scriptFooterConstant)
	return script.String()
}
