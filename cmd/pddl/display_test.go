package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeFile(t *testing.T) {
	path := writeTempFile(t, "blocks.pddl",
		"(define (domain blocks) (:action move :parameters (?b)))")

	doc, err := analyzeFile(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Domain)
	assert.Nil(t, doc.Problem)
	assert.Equal(t, "blocks", doc.Domain.Name())
}

func TestAnalyzeFileMissingDefine(t *testing.T) {
	path := writeTempFile(t, "bad.pddl", "(domain blocks)")

	_, err := analyzeFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "define")
}

func TestDisplaySummary(t *testing.T) {
	path := writeTempFile(t, "blocks.pddl", `(define (domain blocks)
  (:requirements :strips)
  (:types block - object)
  (:predicates (on ?x - block ?y - block))
  (:action move :parameters (?b - block))
  (:durative-action slide :parameters (?b - block)))`)

	doc, err := analyzeFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	displaySummary(&buf, doc)
	out := buf.String()

	assert.Contains(t, out, "Domain: blocks")
	assert.Contains(t, out, ":strips")
	assert.Contains(t, out, "block -> object")
	assert.Contains(t, out, "on ?x:block ?y:block")
	assert.Contains(t, out, "move")
	assert.Contains(t, out, "slide (durative)")
}

func TestDisplayDiagnosticsClean(t *testing.T) {
	path := writeTempFile(t, "ok.pddl", "(define (domain d))")

	doc, err := analyzeFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Equal(t, 0, displayDiagnostics(&buf, doc))
	assert.Contains(t, buf.String(), "ok")
}

func TestDisplayDiagnosticsFindings(t *testing.T) {
	path := writeTempFile(t, "broken.pddl",
		"(define (domain d) (:prediates (on ?x))))")

	doc, err := analyzeFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	n := displayDiagnostics(&buf, doc)
	assert.Equal(t, 2, n)

	out := buf.String()
	assert.Contains(t, out, "unmatched ')'")
	assert.Contains(t, out, "unknown section :prediates")
	assert.Contains(t, out, "did you mean :predicates?")
}

func TestCheckFile(t *testing.T) {
	path := writeTempFile(t, "ok.pddl", "(define (domain d))")

	var buf bytes.Buffer
	n, err := checkFile(&buf, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
