package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/binderdash/internal/core/domain"
)

func TestStructureService_Load(t *testing.T) {
	parser := &mockParser{structure: twoAtoms(2)}
	svc := NewStructureService(parser, memory.NewCache())
	data := []byte("ATOM ...")

	first, err := svc.Load(context.Background(), domain.StructureInput{FileName: "PDL1_l80_s123.pdb", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "PDL1-l80", first.Name)

	// Same bytes under a different name reuse the parse but not the name.
	second, err := svc.Load(context.Background(), domain.StructureInput{FileName: "IL7R_l60_s9.pdb", Data: data})
	require.NoError(t, err)
	assert.Equal(t, "IL7R-l60", second.Name)
	assert.Equal(t, "PDL1-l80", first.Name)
	assert.Equal(t, 1, parser.calls)
	assert.Same(t, first.Chains[0], second.Chains[0])
}

func TestStructureService_NoCache(t *testing.T) {
	parser := &mockParser{structure: twoAtoms(2)}
	svc := NewStructureService(parser, nil)
	in := domain.StructureInput{FileName: "a.pdb", Data: []byte("x")}

	_, err := svc.Load(context.Background(), in)
	require.NoError(t, err)
	_, err = svc.Load(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2, parser.calls)
}

func TestStructureService_ParseError(t *testing.T) {
	parser := &mockParser{err: &domain.ParseError{Line: 4, Msg: "bad x coordinate"}}
	cache := memory.NewCache()
	svc := NewStructureService(parser, cache)

	_, err := svc.Load(context.Background(), domain.StructureInput{FileName: "bad.pdb", Data: []byte("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "bad.pdb")

	structures, _ := cache.Len()
	assert.Equal(t, 0, structures)
}

func TestStructureService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parser := &mockParser{structure: twoAtoms(2)}
	_, err := NewStructureService(parser, nil).Load(ctx, domain.StructureInput{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, parser.calls)
}
