package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimir-rom/chartprops/steps"
)

var (
	leaf    = steps.JSON{"key": "leafNodeFill", "type": "color", "title": "叶子节点填充色", "default": "#888"}
	nonLeaf = steps.JSON{"key": "nonLeafNodeFill", "type": "color", "title": "非叶子节点填充色", "default": "#fff"}
)

func TestListJson(t *testing.T) {
	testCmdJson(t, []string{"list", "-o", "json"}, []steps.JSON{leaf, nonLeaf})
}

func TestGet(t *testing.T) {
	testCmdJson(t, []string{"get", "leafNodeFill", "-o", "json"}, []steps.JSON{leaf})
	testCmdJson(t, []string{"get", "nonLeafNodeFill", "-o", "json"}, []steps.JSON{nonLeaf})
}

func TestGetUnknown(t *testing.T) {
	out, err := runCmd(t, "get", "unknownKey")
	require.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Empty(t, out)
}

func TestKQL(t *testing.T) {
	testCmdJson(t, []string{"list", "-o", "json", "-f", "type:color"}, []steps.JSON{leaf, nonLeaf})
	testCmdJson(t, []string{"list", "-o", "json", "-f", "key:nonLeafNodeFill"}, []steps.JSON{nonLeaf})
}

func TestJq(t *testing.T) {
	testCmdJson(t,
		[]string{"list", "-o", "json", "--jq", `.default == "#888"`},
		[]steps.JSON{leaf})

	testCmdJson(t,
		[]string{"list", "-o", "json", "--jq", `{key, default}`},
		[]steps.JSON{
			{"key": "leafNodeFill", "default": "#888"},
			{"key": "nonLeafNodeFill", "default": "#fff"},
		})
}

func TestShowErrors(t *testing.T) {
	out, err := runCmd(t, "list", "-o", "json", "--jq", ".title | tonumber")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runCmd(t, "list", "-o", "json", "--jq", ".title | tonumber", "--show-errors")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestIncludeAny(t *testing.T) {
	testCmdJson(t, []string{"list", "-o", "json", "-i", "非叶子"}, []steps.JSON{nonLeaf})
	testCmdJson(t, []string{"list", "-o", "json", "-i", "FFF,#888"}, []steps.JSON{leaf, nonLeaf})
	testCmdJson(t, []string{"list", "-o", "json", "-i", "border"}, []steps.JSON{})
}

func TestSelect(t *testing.T) {
	testCmdJson(t,
		[]string{"list", "-o", "json", "--select", "key,default"},
		[]steps.JSON{
			{"key": "leafNodeFill", "default": "#888"},
			{"key": "nonLeafNodeFill", "default": "#fff"},
		})
}

func TestText(t *testing.T) {
	testCmdText(t,
		[]string{"list"},
		"leafNodeFill    color 叶子节点填充色   #888\n"+
			"nonLeafNodeFill color 非叶子节点填充色 #fff\n")

	testCmdText(t,
		[]string{"list", "--select", "key,title"},
		"leafNodeFill    叶子节点填充色\n"+
			"nonLeafNodeFill 非叶子节点填充色\n")

	testCmdText(t,
		[]string{"get", "nonLeafNodeFill", "--txt-delim", "|"},
		"nonLeafNodeFill|color|非叶子节点填充色|#fff\n")
}

func TestConfigFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "chartprops.yaml")
	require.NoError(t, os.WriteFile(name, []byte("output: json\nselect: [key]\n"), 0o600))

	testCmdJson(t,
		[]string{"list", "-c", name},
		[]steps.JSON{{"key": "leafNodeFill"}, {"key": "nonLeafNodeFill"}})

	testCmdText(t,
		[]string{"get", "leafNodeFill", "-c", name, "-o", "text", "--txt-delim", ";"},
		"leafNodeFill;color;叶子节点填充色;#888\n")
}

func TestRules(t *testing.T) {
	testCmdText(t, []string{"rules"}, "tree-node\n")
}

func TestErrors(t *testing.T) {
	_, err := runCmd(t, "list", "--rules", "pie")
	assert.ErrorIs(t, err, ErrUnknownRules)

	_, err = runCmd(t, "list", "-o", "xml")
	assert.ErrorIs(t, err, ErrUnknownOutput)

	_, err = runCmd(t, "list", "-f", "type:(color")
	assert.Error(t, err)

	_, err = runCmd(t, "list", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runCmd(t, "get")
	assert.Error(t, err)
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := bytes.Buffer{}
	cmd := createRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(slices.Concat(args, []string{"--no-color"}))
	err := cmd.Execute()
	return out.String(), err
}

func testCmdText(t *testing.T, args []string, expected string) {
	t.Helper()
	out, err := runCmd(t, args...)
	require.NoError(t, err)
	assert.Equal(t, expected, out)
}

func testCmdJson(t *testing.T, args []string, expected []steps.JSON) {
	t.Helper()
	out, err := runCmd(t, args...)
	require.NoError(t, err)

	res := make([]steps.JSON, 0, len(expected))
	decoder := json.NewDecoder(bytes.NewBufferString(out))
	for {
		j := make(steps.JSON)
		if err := decoder.Decode(&j); errors.Is(err, io.EOF) {
			break
		} else {
			require.NoError(t, err)
		}
		res = append(res, j)
	}

	assert.Equal(t, expected, res)
}
