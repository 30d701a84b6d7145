package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csm-lang/csm/arch"
)

func analyzeSource(t *testing.T, source string) ([]Inst, *Analyzer, error) {
	t.Helper()

	stmts, err := parseSource(t, source)
	require.NoError(t, err)

	ana := &Analyzer{Config: DefaultConfig()}
	insts, err := ana.Analyze(stmts)
	return insts, ana, err
}

func TestAnalyzerLabels(t *testing.T) {
	assert := assert.New(t)

	insts, ana, err := analyzeSource(t,
		"start: MOV R1, 5\n"+
			"loop:  SUB R1, 1\n"+
			"       JNZ loop\n"+
			"       JMP done\n"+
			"done:  HLT\n")
	assert.NoError(err)
	require.Len(t, insts, 5)

	// Labels bind to the running address counter, one word per statement.
	assert.Equal(map[string]uint32{"START": 0, "LOOP": 1, "DONE": 4}, ana.Labels())

	// References resolve to plain address operands.
	assert.Equal(OPERAND_ADDRESS, insts[2].Operands[0].Kind)
	assert.Equal(int64(1), insts[2].Operands[0].Value)
	assert.Equal(OPERAND_ADDRESS, insts[3].Operands[0].Kind)
	assert.Equal(int64(4), insts[3].Operands[0].Value)
}

func TestAnalyzerLabelsDeterministic(t *testing.T) {
	assert := assert.New(t)

	source := "a: NOP\nb: NOP\nc: JMP a\n"

	_, first, err := analyzeSource(t, source)
	assert.NoError(err)
	_, second, err := analyzeSource(t, source)
	assert.NoError(err)

	assert.Equal(first.Labels(), second.Labels())
}

func TestAnalyzerNumericAddress(t *testing.T) {
	assert := assert.New(t)

	insts, _, err := analyzeSource(t, "LDR R1, 12\nSTR R1, 12\n")
	assert.NoError(err)
	require.Len(t, insts, 2)

	assert.Equal(OPERAND_ADDRESS, insts[0].Operands[1].Kind)
	assert.Equal(int64(12), insts[0].Operands[1].Value)
}

func TestAnalyzerData(t *testing.T) {
	assert := assert.New(t)

	insts, _, err := analyzeSource(t, "value: DAT -1\n")
	assert.NoError(err)
	require.Len(t, insts, 1)

	assert.Nil(insts[0].Entry)
	assert.Equal(int64(-1), insts[0].Operands[0].Value)
}

func TestAnalyzerErrDuplicateLabel(t *testing.T) {
	assert := assert.New(t)

	_, _, err := analyzeSource(t, "x: NOP\nx: NOP\n")
	var dupErr *ErrDuplicateLabel
	assert.ErrorAs(err, &dupErr)
	assert.Equal("X", dupErr.Name)
	assert.Equal(1, dupErr.Prior.Line)
	assert.Equal(2, dupErr.Pos.Line)
}

func TestAnalyzerErrUndefinedLabel(t *testing.T) {
	assert := assert.New(t)

	_, _, err := analyzeSource(t, "JMP nowhere\n")
	var undefErr *ErrUndefinedLabel
	assert.ErrorAs(err, &undefErr)
	assert.Equal("NOWHERE", undefErr.Name)
}

func TestAnalyzerErrUnknownMnemonic(t *testing.T) {
	assert := assert.New(t)

	_, _, err := analyzeSource(t, "FROB R1\n")
	var unkErr *ErrUnknownMnemonic
	assert.ErrorAs(err, &unkErr)
	assert.ErrorIs(err, arch.ErrUnknownMnemonic(""))
}

func TestAnalyzerErrOperandCount(t *testing.T) {
	assert := assert.New(t)

	for _, source := range []string{
		"MOV R1\n",
		"HLT R1\n",
		"ADD R1, R2, R3\n",
		"DAT 1, 2\n",
	} {
		_, _, err := analyzeSource(t, source)
		var cntErr *ErrOperandCount
		assert.ErrorAs(err, &cntErr, source)
	}
}

func TestAnalyzerErrOperandMismatch(t *testing.T) {
	assert := assert.New(t)

	for _, source := range []string{
		"MOV 5, R1\n",             // destination must be a register
		"JMP R1\n",                // jump target must be an address
		"LDR R1, -4\n",            // negative address
		"ADD R1, lbl\nlbl: HLT\n", // label where a value belongs
	} {
		_, _, err := analyzeSource(t, source)
		var misErr *ErrOperandMismatch
		assert.ErrorAs(err, &misErr, source)
	}
}

func TestAnalyzerErrRegisterRange(t *testing.T) {
	assert := assert.New(t)

	// The default bank has 8 registers, R0 through R7.
	_, _, err := analyzeSource(t, "MOV R8, 1\n")
	var rngErr *ErrRegisterRange
	assert.ErrorAs(err, &rngErr)
	assert.Equal(int64(8), rngErr.Index)
	assert.Equal(8, rngErr.Count)
}
