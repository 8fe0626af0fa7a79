package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const fixtureCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,525,F9 v1.0  B0005,v1.0
3,CCAFS LC-40,1,677,F9 v1.0  B0007,v1.0
4,VAFB SLC-4E,0,500,F9 v1.1  B1003,v1.1
5,KSC LC-39A,1,2490,F9 FT B1031.1,FT
6,KSC LC-39A,1,5300,F9 FT B1032.1,FT
7,VAFB SLC-4E,1,9600,F9 B4 B1041.1,B4
`

// writeFixture writes the launch data and a config file pointing at it,
// returning the config path.
func writeFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "launches.csv")
	if err := os.WriteFile(dataPath, []byte(fixtureCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "launchdash.yaml")
	cfg := fmt.Sprintf("data: %q\nchart:\n  width: 400\n  height: 300\n", dataPath)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

// runRoot executes the root command with args and returns its stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
