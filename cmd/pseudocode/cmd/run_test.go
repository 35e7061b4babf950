package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProgram writes src to a temp file under t.TempDir() and returns its path.
func writeProgram(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// whatever fn wrote plus fn's own return value.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), fnErr
}

func TestRunProgramHelloOutputsGreeting(t *testing.T) {
	path := writeProgram(t, "hello.txt", "OUTPUT \"Hello, World!\"\n")

	out, err := captureStdout(t, func() error {
		return runProgram(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runProgram() error = %v", err)
	}
	if out != "Hello, World!\n" {
		t.Errorf("stdout = %q, want %q", out, "Hello, World!\n")
	}
}

func TestRunProgramForSum(t *testing.T) {
	src := "DECLARE total : INTEGER\ntotal <- 0\nFOR i <- 1 TO 5\n    total <- total + i\nNEXT i\nOUTPUT total\n"
	path := writeProgram(t, "forsum.txt", src)

	out, err := captureStdout(t, func() error {
		return runProgram(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runProgram() error = %v", err)
	}
	if out != "15\n" {
		t.Errorf("stdout = %q, want %q", out, "15\n")
	}
}

func TestRunProgramMissingFileIsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.txt")
	if err := runProgram(runCmd, []string{missing}); err == nil {
		t.Error("runProgram() error = nil, want a file-read error")
	}
}

func TestRunProgramTypeMismatchFails(t *testing.T) {
	path := writeProgram(t, "mismatch.txt", "DECLARE x : INTEGER\nx <- \"hello\"\n")

	oldErr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := runProgram(runCmd, []string{path})

	w.Close()
	os.Stderr = oldErr
	var buf bytes.Buffer
	buf.ReadFrom(r)
	stderrOutput := buf.String()

	if err == nil {
		t.Fatal("runProgram() error = nil, want a failure for a type mismatch")
	}
	if !strings.Contains(stderrOutput, "type mismatch") {
		t.Errorf("stderr = %q, want it to mention a type mismatch", stderrOutput)
	}
}

func TestRunProgramStrictRejectsUndeclaredVariable(t *testing.T) {
	path := writeProgram(t, "undeclared.txt", "x <- 1\nOUTPUT x\n")

	oldStrict := runStrict
	defer func() { runStrict = oldStrict }()
	runStrict = true

	if err := runProgram(runCmd, []string{path}); err == nil {
		t.Error("runProgram() with --strict error = nil, want an undeclared-variable error")
	}
}

func TestRunProgramNonStrictAutoDeclaresOnAssignment(t *testing.T) {
	path := writeProgram(t, "autodeclare.txt", "x <- 1\nOUTPUT x\n")

	oldStrict := runStrict
	defer func() { runStrict = oldStrict }()
	runStrict = false

	out, err := captureStdout(t, func() error {
		return runProgram(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runProgram() error = %v", err)
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n")
	}
}

func TestRunProgramConfigFlagAppliesMaxRecursionDepth(t *testing.T) {
	src := "PROCEDURE Recurse()\n    CALL Recurse()\nENDPROCEDURE\nCALL Recurse()\n"
	path := writeProgram(t, "recurse.txt", src)
	cfgPath := writeProgram(t, "config.yaml", "maxRecursionDepth: 5\n")

	oldConfig := runConfig
	defer func() { runConfig = oldConfig }()
	runConfig = cfgPath

	oldStderr := os.Stderr
	_, w, _ := os.Pipe()
	os.Stderr = w
	err := runProgram(runCmd, []string{path})
	w.Close()
	os.Stderr = oldStderr

	if err == nil {
		t.Error("runProgram() with a maxRecursionDepth of 5 error = nil, want a recursion-depth error")
	}
}

func TestRunProgramDumpASTWritesSummaryToStderr(t *testing.T) {
	path := writeProgram(t, "dumpast.txt", "OUTPUT 1\nOUTPUT 2\n")

	oldDumpAST := runDumpAST
	defer func() { runDumpAST = oldDumpAST }()
	runDumpAST = true

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	_, err := captureStdout(t, func() error {
		return runProgram(runCmd, []string{path})
	})

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)
	stderrOutput := buf.String()

	if err != nil {
		t.Fatalf("runProgram() error = %v", err)
	}
	if !strings.Contains(stderrOutput, "2 top-level statement(s)") {
		t.Errorf("stderr = %q, want it to report the top-level statement count", stderrOutput)
	}
}

func TestRunProgramReadsFromStdinWhenNoFileGiven(t *testing.T) {
	oldStdin := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()

	go func() {
		w.WriteString("OUTPUT \"from stdin\"\n")
		w.Close()
	}()

	out, err := captureStdout(t, func() error {
		return runProgram(runCmd, nil)
	})
	if err != nil {
		t.Fatalf("runProgram() error = %v", err)
	}
	if out != "from stdin\n" {
		t.Errorf("stdout = %q, want %q", out, "from stdin\n")
	}
}
