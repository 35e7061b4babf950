package interp

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/aclevel/pseudocode/internal/builtins"
	"github.com/aclevel/pseudocode/internal/lexer"
	"github.com/aclevel/pseudocode/internal/runtime"
	"github.com/gkampitakis/go-snaps/snaps"
)

// runSource lexes, parses, and evaluates source with empty stdin,
// returning stdout and the terminal Result.
func runSource(t *testing.T, source string) (string, Result) {
	t.Helper()
	var out bytes.Buffer
	res := Run(source, strings.NewReader(""), &out, Options{})
	return out.String(), res
}

// The seven worked end-to-end scenarios named in the language contract,
// each checked against its exact expected stdout via a go-snaps snapshot
// so a future change to rendering is caught even if it still "looks
// right" to a quick read.

func TestScenarioHello(t *testing.T) {
	out, res := runSource(t, `OUTPUT "Hello, World!"`+"\n")
	if !res.OK() {
		t.Fatalf("Run() error = %v (phase %s)", res.Err, res.Phase)
	}
	snaps.MatchSnapshot(t, "hello_stdout", out)
}

func TestScenarioForSum(t *testing.T) {
	src := "DECLARE s : INTEGER\ns <- 0\nFOR i <- 1 TO 5\n    s <- s + i\nNEXT i\nOUTPUT s\n"
	out, res := runSource(t, src)
	if !res.OK() {
		t.Fatalf("Run() error = %v (phase %s)", res.Err, res.Phase)
	}
	snaps.MatchSnapshot(t, "for_sum_stdout", out)
}

func TestScenarioArrayCustomBounds(t *testing.T) {
	src := "DECLARE A : ARRAY[2:4] OF INTEGER\nA[2] <- 10\nA[4] <- 40\nOUTPUT A[2] + A[4]\n"
	out, res := runSource(t, src)
	if !res.OK() {
		t.Fatalf("Run() error = %v (phase %s)", res.Err, res.Phase)
	}
	snaps.MatchSnapshot(t, "array_custom_bounds_stdout", out)
}

func TestScenarioArrayCustomBoundsOutOfRangeErrors(t *testing.T) {
	src := "DECLARE A : ARRAY[2:4] OF INTEGER\nOUTPUT A[1]\n"
	_, res := runSource(t, src)
	if res.OK() {
		t.Fatal("Run() = OK, want IndexOutOfBounds")
	}
	if res.Phase != "eval" {
		t.Errorf("Phase = %q, want %q", res.Phase, "eval")
	}
	if _, ok := res.Err.(*runtime.IndexOutOfBoundsError); !ok {
		t.Errorf("Err = %#v, want *runtime.IndexOutOfBoundsError", res.Err)
	}
}

func TestScenarioByrefSwap(t *testing.T) {
	src := "PROCEDURE SWAP(BYREF a : INTEGER, BYREF b : INTEGER)\n" +
		"    DECLARE t : INTEGER\n" +
		"    t <- a\n" +
		"    a <- b\n" +
		"    b <- t\n" +
		"ENDPROCEDURE\n" +
		"DECLARE x : INTEGER\n" +
		"DECLARE y : INTEGER\n" +
		"x <- 1\n" +
		"y <- 2\n" +
		"CALL SWAP(x, y)\n" +
		"OUTPUT x, y\n"
	out, res := runSource(t, src)
	if !res.OK() {
		t.Fatalf("Run() error = %v (phase %s)", res.Err, res.Phase)
	}
	snaps.MatchSnapshot(t, "byref_swap_stdout", out)
}

func TestScenarioStringOpsMid(t *testing.T) {
	out, res := runSource(t, `OUTPUT MID("abcdef", 2, 3)`+"\n")
	if !res.OK() {
		t.Fatalf("Run() error = %v (phase %s)", res.Err, res.Phase)
	}
	snaps.MatchSnapshot(t, "string_ops_mid_stdout", out)
}

func TestScenarioStringOpsLeftOutOfBoundsErrors(t *testing.T) {
	_, res := runSource(t, `OUTPUT LEFT("hi", 5)`+"\n")
	if res.OK() {
		t.Fatal("Run() = OK, want a BuiltinError")
	}
	if _, ok := res.Err.(*runtime.BuiltinError); !ok {
		t.Errorf("Err = %#v, want *runtime.BuiltinError", res.Err)
	}
}

func TestScenarioFileRoundTrip(t *testing.T) {
	path := tempFilePath(t, "roundtrip.txt")
	src := "OPENFILE \"" + path + "\" FOR WRITE\n" +
		"WRITEFILE \"" + path + "\", \"line1\"\n" +
		"CLOSEFILE \"" + path + "\"\n" +
		"DECLARE s : STRING\n" +
		"OPENFILE \"" + path + "\" FOR READ\n" +
		"READFILE \"" + path + "\", s\n" +
		"OUTPUT s\n"
	out, res := runSource(t, src)
	if !res.OK() {
		t.Fatalf("Run() error = %v (phase %s)", res.Err, res.Phase)
	}
	if out != "line1\n" {
		t.Errorf("stdout = %q, want %q", out, "line1\n")
	}
}

func TestScenarioTypeMismatch(t *testing.T) {
	src := "DECLARE n : INTEGER\nn <- \"x\"\n"
	_, res := runSource(t, src)
	if res.OK() {
		t.Fatal("Run() = OK, want TypeMismatch")
	}
	tm, ok := res.Err.(*runtime.TypeMismatchError)
	if !ok {
		t.Fatalf("Err = %#v, want *runtime.TypeMismatchError", res.Err)
	}
	if tm.Name != "n" || tm.Declared != runtime.KindInteger || tm.Actual != runtime.KindString {
		t.Errorf("TypeMismatchError = %#v, want {Name: n, Declared: INTEGER, Actual: STRING}", tm)
	}
}

// ---- Universal testable properties (spec.md §8) ----

func TestPropertyBalancedIndentDedent(t *testing.T) {
	src := "IF TRUE THEN\n    IF TRUE THEN\n        OUTPUT 1\n    ENDIF\nENDIF\n"
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.INDENT:
			indents++
		case lexer.DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Errorf("INDENT count = %d, DEDENT count = %d, want equal", indents, dedents)
	}
	if indents != 2 {
		t.Errorf("INDENT count = %d, want 2", indents)
	}
}

func TestPropertyOutputAlwaysEndsInNewline(t *testing.T) {
	out, res := runSource(t, `OUTPUT "no trailing newline in source"`)
	if !res.OK() {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("stdout = %q, want a trailing newline", out)
	}
}

func TestPropertyConstantIsStableAndWriteFails(t *testing.T) {
	out, res := runSource(t, "CONSTANT x = 7\nOUTPUT x\nOUTPUT x\n")
	if !res.OK() {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if out != "7\n7\n" {
		t.Errorf("stdout = %q, want %q (constant must read the same value twice)", out, "7\n7\n")
	}

	_, res = runSource(t, "CONSTANT x = 7\nx <- 8\n")
	if res.OK() {
		t.Fatal("Run() = OK, want ConstantReassignment")
	}
	if _, ok := res.Err.(*runtime.ConstantReassignmentError); !ok {
		t.Errorf("Err = %#v, want *runtime.ConstantReassignmentError", res.Err)
	}
}

func TestPropertyRoutineLocalsDoNotLeakOut(t *testing.T) {
	src := "PROCEDURE Local()\n" +
		"    DECLARE n : INTEGER\n" +
		"    n <- 99\n" +
		"ENDPROCEDURE\n" +
		"DECLARE n : INTEGER\n" +
		"n <- 1\n" +
		"CALL Local()\n" +
		"OUTPUT n\n"
	out, res := runSource(t, src)
	if !res.OK() {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q (the procedure's own n must not affect the caller's)", out, "1\n")
	}
}

func TestPropertyByRefWriteIsObservableAtCallSite(t *testing.T) {
	src := "PROCEDURE SetTo(BYREF a : INTEGER)\n" +
		"    a <- 42\n" +
		"ENDPROCEDURE\n" +
		"DECLARE x : INTEGER\n" +
		"x <- 0\n" +
		"CALL SetTo(x)\n" +
		"OUTPUT x\n"
	out, res := runSource(t, src)
	if !res.OK() {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if out != "42\n" {
		t.Errorf("stdout = %q, want %q", out, "42\n")
	}
}

func TestPropertyArrayBoundsAcceptInRangeRejectOutOfRange(t *testing.T) {
	for _, idx := range []int{2, 3, 4} {
		src := "DECLARE A : ARRAY[2:4] OF INTEGER\nA[" + strconv.Itoa(idx) + "] <- 1\nOUTPUT A[" + strconv.Itoa(idx) + "]\n"
		out, res := runSource(t, src)
		if !res.OK() {
			t.Fatalf("index %d: Run() error = %v", idx, res.Err)
		}
		if out != "1\n" {
			t.Errorf("index %d: stdout = %q, want %q", idx, out, "1\n")
		}
	}
	for _, idx := range []int{1, 5} {
		src := "DECLARE A : ARRAY[2:4] OF INTEGER\nOUTPUT A[" + strconv.Itoa(idx) + "]\n"
		_, res := runSource(t, src)
		if res.OK() {
			t.Fatalf("index %d: Run() = OK, want IndexOutOfBounds", idx)
		}
		if _, ok := res.Err.(*runtime.IndexOutOfBoundsError); !ok {
			t.Errorf("index %d: Err = %#v, want *runtime.IndexOutOfBoundsError", idx, res.Err)
		}
	}
}

func TestPropertyForExecutesExactTripCount(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{1, 5, 5},
		{5, 1, 0},
		{3, 3, 1},
	}
	for _, tt := range tests {
		src := "DECLARE count : INTEGER\ncount <- 0\nFOR i <- " + strconv.Itoa(tt.a) + " TO " + strconv.Itoa(tt.b) + "\n    count <- count + 1\nNEXT i\nOUTPUT count\n"
		out, res := runSource(t, src)
		if !res.OK() {
			t.Fatalf("FOR %d TO %d: Run() error = %v", tt.a, tt.b, res.Err)
		}
		want := strconv.Itoa(tt.want) + "\n"
		if out != want {
			t.Errorf("FOR %d TO %d: stdout = %q, want %q", tt.a, tt.b, out, want)
		}
	}
}

func TestPropertyStrToNumNumToStrRoundTrip(t *testing.T) {
	r := builtins.NewRegistry()
	numToStr, _ := r.Lookup("NUM_TO_STR")
	strToNum, _ := r.Lookup("STR_TO_NUM")

	values := []runtime.Value{
		runtime.Integer(0),
		runtime.Integer(-42),
		runtime.Integer(1000000),
		runtime.Real(3.5),
		runtime.Real(-0.25),
	}
	for _, v := range values {
		s, err := numToStr(roundTripContext{}, []runtime.Value{v}, 1, 1)
		if err != nil {
			t.Fatalf("NUM_TO_STR(%v) error = %v", v, err)
		}
		back, err := strToNum(roundTripContext{}, []runtime.Value{s}, 1, 1)
		if err != nil {
			t.Fatalf("STR_TO_NUM(%v) error = %v", s, err)
		}
		if back != v {
			t.Errorf("round trip of %#v produced %#v", v, back)
		}
	}
}

func TestPropertyLengthOfConcatenationIsSumOfLengths(t *testing.T) {
	pairs := [][2]string{
		{"hello", "world"},
		{"", "nonempty"},
		{"a", ""},
	}
	for _, pair := range pairs {
		src := `OUTPUT LENGTH("` + pair[0] + `" & "` + pair[1] + `")` + "\n"
		out, res := runSource(t, src)
		if !res.OK() {
			t.Fatalf("Run() error = %v", res.Err)
		}
		want := strconv.Itoa(len(pair[0])+len(pair[1])) + "\n"
		if out != want {
			t.Errorf("LENGTH(%q & %q) stdout = %q, want %q", pair[0], pair[1], out, want)
		}
	}
}

// roundTripContext satisfies builtins.Context for built-ins that never
// query file state.
type roundTripContext struct{}

func (roundTripContext) FileEOF(string) (bool, error) { return false, nil }

func tempFilePath(t *testing.T, name string) string {
	t.Helper()
	return t.TempDir() + "/" + name
}
