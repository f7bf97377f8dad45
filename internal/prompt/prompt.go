// Package prompt renders the system prompt: the tag format contract,
// two worked examples, the tool list and a snapshot of the environment
// the run operates in.
package prompt

import (
	"fmt"
	"runtime"
	"strings"
	"text/template"

	"github.com/Cyclone1070/reagent/internal/tool"
)

// MaxFilesShown is the default cap on the directory listing embedded
// in the prompt.
const MaxFilesShown = 50

var systemTmpl = template.Must(template.New("system").Parse(systemTemplate))

// Data fills the system prompt template.
type Data struct {
	ToolList        string
	OperatingSystem string
	FileList        string
}

// Render produces the system prompt for one run from the registered
// tools and the workspace's top-level file names. A non-positive
// maxFiles falls back to MaxFilesShown.
func Render(tools []tool.Descriptor, files []string, maxFiles int) (string, error) {
	if maxFiles <= 0 {
		maxFiles = MaxFilesShown
	}
	data := Data{
		ToolList:        formatToolList(tools),
		OperatingSystem: OSName(runtime.GOOS),
		FileList:        formatFileList(files, maxFiles),
	}
	var sb strings.Builder
	if err := systemTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return sb.String(), nil
}

// formatToolList renders one line per tool: its call signature and the
// one-line description.
func formatToolList(tools []tool.Descriptor) string {
	lines := make([]string, len(tools))
	for i, d := range tools {
		lines[i] = fmt.Sprintf("- %s: %s", d.Signature(), d.Description)
	}
	return strings.Join(lines, "\n")
}

// formatFileList joins the first max names and notes how many were cut.
func formatFileList(files []string, max int) string {
	if len(files) <= max {
		return strings.Join(files, ", ")
	}
	overflow := len(files) - max
	return strings.Join(files[:max], ", ") + fmt.Sprintf(" (+%d more)", overflow)
}

// OSName maps a GOOS value to the name shown in the prompt.
func OSName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return "Unknown"
	}
}
