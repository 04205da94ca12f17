package core

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/require"
)

const (
	sampleRecordFile = "../testdata/sample_record.json"
	referencesFile   = "../testdata/references.yaml"
)

var fixedTime = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func loadSample(t testing.TB) schema.StudentRecord {
	t.Helper()
	rv, err := contract.NewRecordValidator()
	require.NoError(t, err)
	rec, err := rv.LoadRecord(sampleRecordFile)
	require.NoError(t, err)
	return rec
}

func loadReferences(t testing.TB) *schema.ReferenceProfileSet {
	t.Helper()
	refs, err := contract.LoadReferenceProfiles(referencesFile)
	require.NoError(t, err)
	return refs
}

func testConfig(t testing.TB, paths ...string) *contract.Config {
	t.Helper()
	return &contract.Config{
		RecordPaths: paths,
		ResultLimit: 10,
		Workers:     2,
		Precision:   1,
		Output:      schema.JSONOut,
		OutputFile:  filepath.Join(t.TempDir(), "out.json"),
		Rubric:      schema.DefaultRubric(),
		Now:         func() time.Time { return fixedTime },
	}
}
