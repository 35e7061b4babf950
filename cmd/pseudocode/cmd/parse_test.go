package cmd

import (
	"strings"
	"testing"
)

func TestParseProgramDumpsStatementTree(t *testing.T) {
	src := "DECLARE x : INTEGER\nx <- 1\nIF x > 0 THEN\n    OUTPUT x\nENDIF\n"
	path := writeProgram(t, "parse.txt", src)

	out, err := captureStdout(t, func() error {
		return parseProgram(parseCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("parseProgram() error = %v", err)
	}
	for _, want := range []string{"DECLARE x", "ASSIGN", "IF (1 then, 0 else)", "OUTPUT (1 value(s))"} {
		if !strings.Contains(out, want) {
			t.Errorf("parse output = %q, want it to contain %q", out, want)
		}
	}
}

func TestParseProgramReportsSyntaxError(t *testing.T) {
	path := writeProgram(t, "badsyntax.txt", "IF THEN\nENDIF\n")

	_, err := captureStdout(t, func() error {
		return parseProgram(parseCmd, []string{path})
	})
	if err == nil {
		t.Error("parseProgram() error = nil, want a syntax error")
	}
}
