package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does NOT run the editor itself; callers use tea.Exec with the returned
// *exec.Cmd so Bubble Tea properly suspends raw terminal mode.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `# termbooru: edit the tag query below, one tag per line.
# Lines starting with '#' are ignored.
# Save and exit to search. An empty file clears the query.

`

// Cmd writes the query to a temp file, one tag per line, and prepares the
// editor command for it. $EDITOR may carry arguments ("code -w").
func (e *EnvEditor) Cmd(query string) (*exec.Cmd, string, error) {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{"vi"}
	}

	tmpFile, err := os.CreateTemp("", "termbooru-tags-*.txt")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	body := strings.Join(strings.Fields(query), "\n")
	if _, err := tmpFile.WriteString(instructionComment + body + "\n"); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	cmd := exec.Command(args[0], append(args[1:], tmpPath)...)
	return cmd, tmpPath, nil
}

// ReadQuery reads the temp file back into a space-separated tag query and
// removes the file. Comment lines are dropped and every whitespace-separated
// token counts as a tag.
func (e *EnvEditor) ReadQuery(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	var tags []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tags = append(tags, strings.Fields(line)...)
	}
	return strings.Join(tags, " "), nil
}
