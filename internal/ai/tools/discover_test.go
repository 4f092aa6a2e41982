package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedScript(name, marker string) string {
	return fmt.Sprintf(`case "$1" in
--name) echo "%s"; exit 0 ;;
--description) echo "test tool %s"; exit 0 ;;
--parameters) echo '{"type":"object","properties":{}}'; exit 0 ;;
esac
echo "%s"
`, name, name, marker)
}

func TestDiscoverToolsRegistersValidCandidates(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "calculator.sh", namedScript("calculator", "calc-ran"))
	writeScript(t, dir, "weather.sh", namedScript("weather", "weather-ran"))

	registry := NewToolRegistry()
	require.NoError(t, DiscoverTools(dir, registry, testScriptOptions()))

	assert.Len(t, registry.GetAllTools(), 2)
	for _, name := range []string{"calculator", "weather"} {
		_, err := registry.GetTool(name)
		assert.NoError(t, err)
	}
}

func TestDiscoverToolsSkipsInvalidCandidates(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "good.sh", namedScript("good", "ok"))
	writeScript(t, dir, "noname.sh", `case "$1" in
--name) exit 0 ;;
--description) echo "nameless"; exit 0 ;;
--parameters) echo '{}'; exit 0 ;;
esac
`)
	writeScript(t, dir, "badjson.sh", `case "$1" in
--name) echo "badjson"; exit 0 ;;
--description) echo "broken schema"; exit 0 ;;
--parameters) echo 'nope{'; exit 0 ;;
esac
`)

	// Non-executable files and subdirectories are not candidates at all.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lib"), 0o755))

	registry := NewToolRegistry()
	require.NoError(t, DiscoverTools(dir, registry, testScriptOptions()))

	// Registration count equals the count of valid candidates.
	require.Len(t, registry.GetAllTools(), 1)
	assert.Equal(t, "good", registry.GetAllTools()[0].Name())
}

func TestDiscoverToolsDuplicateNameFirstWins(t *testing.T) {
	dir := t.TempDir()
	// ReadDir visits sorted names, so 01_ registers before 02_.
	writeScript(t, dir, "01_calc.sh", namedScript("calculator", "first-ran"))
	writeScript(t, dir, "02_calc.sh", namedScript("calculator", "second-ran"))

	registry := NewToolRegistry()
	require.NoError(t, DiscoverTools(dir, registry, testScriptOptions()))

	require.Len(t, registry.GetAllTools(), 1)
	result, err := registry.ExecuteTool("calculator", "{}")
	require.NoError(t, err)
	assert.Equal(t, "first-ran\n", result)
}

func TestDiscoverToolsMissingDirectory(t *testing.T) {
	registry := NewToolRegistry()
	err := DiscoverTools(filepath.Join(t.TempDir(), "nope"), registry, testScriptOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tools directory")
}
