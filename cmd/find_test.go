package cmd

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"
)

func Test_writeFindOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "found.json")

	writeFindOutput(path, []findEntry{
		{Name: "t7 promoter", Bp: 18, Seq: "TAATACGACTCACTATAG"},
		{Name: "probe", Bp: 4, Seq: "ACGT"},
	})

	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	output := findOutput{}
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("failed to parse written JSON: %v", err)
	}
	if output.Time == "" {
		t.Error("findOutput.Time is empty")
	}
	if len(output.Sequences) != 2 {
		t.Fatalf("wrote %d sequences, want 2", len(output.Sequences))
	}
	if output.Sequences[0].Name != "t7 promoter" || output.Sequences[0].Seq != "TAATACGACTCACTATAG" {
		t.Errorf("first sequence = %+v", output.Sequences[0])
	}
	if output.Sequences[1].Bp != 4 {
		t.Errorf("second sequence bp = %d, want 4", output.Sequences[1].Bp)
	}
}
