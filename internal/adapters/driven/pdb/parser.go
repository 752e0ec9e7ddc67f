// Package pdb reads fixed-column PDB coordinate files into the atomic model.
package pdb

import (
	"bufio"
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.StructureParser = (*Parser)(nil)

// minRecordLen is the shortest ATOM/HETATM record that still carries
// x, y and z.
const minRecordLen = 54

// Parser reads the first model of a PDB file.
//
// Alternate locations other than blank or 'A' are dropped. Insertion codes
// are ignored, so inserted residues merge into the residue with the same
// sequence number. A residue is hetero when it comes from HETATM records or
// is a water; hetero and standard residues sharing a number stay separate.
type Parser struct{}

// waterNames are residue names read as hetero even on ATOM records.
var waterNames = []string{"HOH", "WAT", "DOD"}

// NewParser creates a PDB parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a structure from PDB text.
func (p *Parser) Parse(data []byte) (*domain.Structure, error) {
	b := newBuilder()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 128), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch record(line) {
		case "ATOM", "HETATM":
			if err := b.add(line); err != nil {
				return nil, &domain.ParseError{Line: lineNo, Msg: err.Error()}
			}
		case "ENDMDL", "END":
			if b.atoms > 0 {
				return b.finish()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.ParseError{Line: lineNo + 1, Msg: err.Error()}
	}
	return b.finish()
}

func record(line string) string {
	if len(line) > 6 {
		line = line[:6]
	}
	return strings.TrimSpace(line)
}

type residueKey struct {
	chain  domain.ChainID
	seq    int
	hetero bool
}

type builder struct {
	structure *domain.Structure
	chains    map[domain.ChainID]*domain.Chain
	residues  map[residueKey]*domain.Residue
	atoms     int
}

func newBuilder() *builder {
	return &builder{
		structure: &domain.Structure{},
		chains:    make(map[domain.ChainID]*domain.Chain),
		residues:  make(map[residueKey]*domain.Residue),
	}
}

func (b *builder) add(line string) error {
	if len(line) < minRecordLen {
		return fmt.Errorf("record too short (%d columns)", len(line))
	}

	altLoc := line[16]
	if altLoc != ' ' && altLoc != 'A' {
		return nil
	}

	seq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("bad residue number %q", line[22:26])
	}

	var coord domain.Coord
	for i, dst := range []*float64{&coord.X, &coord.Y, &coord.Z} {
		field := line[30+8*i : 38+8*i]
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("bad %c coordinate %q", "xyz"[i], field)
		}
		*dst = v
	}

	name := strings.TrimSpace(line[12:16])
	atom := domain.Atom{
		Name:     name,
		Element:  element(line, name),
		Backbone: domain.IsBackboneAtomName(name),
		Coord:    coord,
	}

	chainID := domain.ChainID(line[21])
	resName := strings.TrimSpace(line[17:20])
	hetero := record(line) == "HETATM" || slices.Contains(waterNames, resName)
	key := residueKey{chain: chainID, seq: seq, hetero: hetero}
	res, ok := b.residues[key]
	if !ok {
		res = &domain.Residue{
			Chain:  chainID,
			SeqNum: seq,
			Name:   resName,
			Hetero: hetero,
		}
		b.residues[key] = res
		b.chain(chainID).Residues = append(b.chain(chainID).Residues, res)
	}
	res.Atoms = append(res.Atoms, atom)
	b.atoms++
	return nil
}

func (b *builder) chain(id domain.ChainID) *domain.Chain {
	c, ok := b.chains[id]
	if !ok {
		c = &domain.Chain{ID: id}
		b.chains[id] = c
		b.structure.Chains = append(b.structure.Chains, c)
	}
	return c
}

func (b *builder) finish() (*domain.Structure, error) {
	if b.atoms == 0 {
		return nil, &domain.ParseError{Msg: "no ATOM or HETATM records"}
	}
	if !b.structure.HasChain(domain.TargetChain) && !b.structure.HasChain(domain.BinderChain) {
		return nil, &domain.ParseError{Msg: "neither chain A nor chain B present"}
	}
	return b.structure, nil
}

// element reads columns 77-78, falling back to the first letter of the
// atom name.
func element(line, name string) string {
	if len(line) >= 78 {
		if e := strings.TrimSpace(line[76:78]); e != "" {
			return e
		}
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return string(r)
		}
	}
	return ""
}
