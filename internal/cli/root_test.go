package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlagsForTest() {
	cfgFile = ""
	output = ""
	urlTemplate = ""
	urlFile = ""
	method = "GET"
	headers = nil
	cookie = ""
	body = ""
	wordlists = nil
	mode = "clusterbomb"
	extensions = nil
	encoders = nil
	threads = 1
	rate = 0
	delay = ""
	matchStatus, matchLines, matchSize, matchWords, matchTime, matchMode = "", "", "", "", "", "or"
	matchRegex = nil
	filterStatus, filterLines, filterSize, filterWords, filterTime, filterMode = "", "", "", "", "", "or"
	filterRegex = nil
	ignoreBody = false
	recursion = false
	recursionDepth = 1
	calibrate = false
	calibrateProbes = 0
	stopOnError = false
	stopOn403Saturation = false
}

func TestParseHeaders_SplitsNameAndValue(t *testing.T) {
	got := parseHeaders([]string{"X-Api-Key: secret", "Accept:application/json"})
	assert.Equal(t, "secret", got["X-Api-Key"])
	assert.Equal(t, "application/json", got["Accept"])
}

func TestParseHeaders_MalformedEntrySkipped(t *testing.T) {
	got := parseHeaders([]string{"no-colon-here"})
	assert.Empty(t, got)
}

func TestBuildConfig_FromFlags(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	dir := t.TempDir() + "/words.txt"
	writeWords(t, dir, []string{"admin", "login"})

	urlTemplate = "http://target/FUZZ"
	wordlists = []string{dir + ":FUZZ"}
	threads = 8
	matchStatus = "200,301-302"

	cfgs, err := buildConfigs()
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, "http://target/FUZZ", cfgs[0].URLTemplate)
	assert.Equal(t, 8, cfgs[0].Threads)
	assert.Len(t, cfgs[0].Wordlists, 1)
}

func TestBuildConfig_MissingURLFails(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	_, err := buildConfigs()
	assert.Error(t, err)
}

func TestBuildConfigs_URLFileYieldsOneConfigPerTemplate(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	dir := t.TempDir()
	wordlistPath := dir + "/words.txt"
	writeWords(t, wordlistPath, []string{"admin"})

	urlsPath := dir + "/urls.txt"
	writeFile(t, urlsPath, "http://a/FUZZ\n\n# skipped\nhttp://b/FUZZ\n")

	urlFile = urlsPath
	wordlists = []string{wordlistPath + ":FUZZ"}

	cfgs, err := buildConfigs()
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "http://a/FUZZ", cfgs[0].URLTemplate)
	assert.Equal(t, "http://b/FUZZ", cfgs[1].URLTemplate)
}

func TestBuildConfigs_EmptyURLFileFails(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	urlsPath := t.TempDir() + "/urls.txt"
	writeFile(t, urlsPath, "# only comments\n")
	urlFile = urlsPath

	_, err := buildConfigs()
	assert.Error(t, err)
}

func TestBuildConfig_PrefersConfigFile(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	dir := t.TempDir()
	wordlistPath := dir + "/words.txt"
	writeWords(t, wordlistPath, []string{"admin"})

	cfgPath := dir + "/config.json"
	writeFile(t, cfgPath, `{"url":"http://h/FUZZ","wordlists":["`+wordlistPath+`:FUZZ"]}`)

	cfgFile = cfgPath
	urlTemplate = ""

	cfgs, err := buildConfigs()
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, "http://h/FUZZ", cfgs[0].URLTemplate)
}

func TestOpenOutput_DefaultsToStdout(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	w, closeOut, err := openOutput()
	require.NoError(t, err)
	defer closeOut()
	assert.Equal(t, os.Stdout, w)
}

func TestOpenOutput_CreatesFileAndParentDir(t *testing.T) {
	resetFlagsForTest()
	defer resetFlagsForTest()

	output = t.TempDir() + "/nested/results.json"
	w, closeOut, err := openOutput()
	require.NoError(t, err)
	require.NotNil(t, w)
	closeOut()

	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func writeWords(t *testing.T, path string, words []string) {
	t.Helper()
	content := ""
	for _, w := range words {
		content += w + "\n"
	}
	writeFile(t, path, content)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
