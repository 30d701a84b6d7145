package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csm-lang/csm/arch"
)

func generateSource(t *testing.T, source string) ([]arch.Word, error) {
	t.Helper()

	insts, _, err := analyzeSource(t, source)
	require.NoError(t, err)

	gen := &Generator{}
	return gen.Generate(insts)
}

func TestGeneratorEncode(t *testing.T) {
	assert := assert.New(t)

	image, err := generateSource(t,
		"MOV R1, 5\n"+
			"ADD R1, R2\n"+
			"loop: JMP loop\n"+
			"HLT\n")
	assert.NoError(err)
	require.Len(t, image, 4)

	want, err := arch.Encode(arch.OP_MOV, arch.Reg(1), arch.Imm(5))
	assert.NoError(err)
	assert.Equal(want, image[0])

	want, err = arch.Encode(arch.OP_ADD, arch.Reg(1), arch.Reg(2))
	assert.NoError(err)
	assert.Equal(want, image[1])

	want, err = arch.Encode(arch.OP_JMP, arch.Addr(2), arch.Field{})
	assert.NoError(err)
	assert.Equal(want, image[2])

	want, err = arch.Encode(arch.OP_HLT, arch.Field{}, arch.Field{})
	assert.NoError(err)
	assert.Equal(want, image[3])
}

func TestGeneratorData(t *testing.T) {
	assert := assert.New(t)

	image, err := generateSource(t, "DAT -1\nDAT 0\nDAT 4294967295\nDAT -2147483648\n")
	assert.NoError(err)
	require.Len(t, image, 4)

	assert.Equal(arch.Word(0xFFFFFFFF), image[0])
	assert.Equal(arch.Word(0), image[1])
	assert.Equal(arch.Word(0xFFFFFFFF), image[2])
	assert.Equal(arch.Word(0x80000000), image[3])
}

func TestGeneratorErrOverflow(t *testing.T) {
	assert := assert.New(t)

	for _, source := range []string{
		"MOV R1, 1024\n",    // immediate above the field maximum
		"MOV R1, -1025\n",   // immediate below the field minimum
		"LDR R1, 2048\n",    // address above the field maximum
		"DAT 4294967296\n",  // data word above 32 bits
		"DAT -2147483649\n", // data word below 32 bits
	} {
		_, err := generateSource(t, source)
		var ovfErr *ErrEncodingOverflow
		assert.ErrorAs(err, &ovfErr, source)
	}
}

func TestGeneratorImmEdges(t *testing.T) {
	assert := assert.New(t)

	image, err := generateSource(t, "MOV R1, 1023\nMOV R1, -1024\n")
	assert.NoError(err)
	require.Len(t, image, 2)

	_, _, b := arch.Decode(image[0])
	assert.Equal(int32(1023), b.Signed())
	_, _, b = arch.Decode(image[1])
	assert.Equal(int32(-1024), b.Signed())
}
