package document

import (
	"fmt"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/container"
	"github.com/tandemgo/tws/diag"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/errs"
	"github.com/tandemgo/tws/format"
	"github.com/tandemgo/tws/text"
)

// Field names the converter reads and writes on document objects.
const (
	FieldClass        = "class"
	FieldRuleset      = "ruleset"
	FieldCurrentLevel = "currentlevel"
	FieldLevelSet     = "levelset"
	FieldGenerator    = "generator"
	FieldSolutions    = "solutions"

	FieldNumber      = "number"
	FieldPassword    = "password"
	FieldRndSlideDir = "rndslidedir"
	FieldStepping    = "stepping"
	FieldRndSeed     = "rndseed"
	FieldMoves       = "moves"
)

const (
	ClassDocument = "tws"
	ClassSolution = "solution"
)

// Generator identifies this converter on documents it produces. It is
// output-only: readers must not require its presence.
const Generator = "tandemgo/tws"

var documentFields = map[string]bool{
	FieldClass: true, FieldRuleset: true, FieldCurrentLevel: true,
	FieldLevelSet: true, FieldGenerator: true, FieldSolutions: true,
}

var solutionFields = map[string]bool{
	FieldClass: true, FieldNumber: true, FieldPassword: true,
	FieldRndSlideDir: true, FieldStepping: true, FieldRndSeed: true, FieldMoves: true,
}

// FromContainer renders a parsed container as a document Value tree.
func FromContainer(c *container.Container) (Value, error) {
	solutions := make([]Value, 0, len(c.Levels))
	for _, lvl := range c.Levels {
		sol, err := solutionFromLevel(lvl)
		if err != nil {
			return Value{}, err
		}
		solutions = append(solutions, sol)
	}

	currentLevel := int64(0)
	if len(c.Levels) > 0 {
		currentLevel = int64(c.Levels[0].Number)
	}

	return Object(map[string]Value{
		FieldClass:        String(ClassDocument),
		FieldRuleset:      String(rulesetName(c.Ruleset)),
		FieldCurrentLevel: Integer(currentLevel),
		FieldLevelSet:     String(c.SetName),
		FieldGenerator:    String(Generator),
		FieldSolutions:    Array(solutions),
	}), nil
}

func solutionFromLevel(lvl container.LevelRecord) (Value, error) {
	fields := map[string]Value{
		FieldClass:   String(ClassSolution),
		FieldNumber:  Integer(int64(lvl.Number)),
		FieldPassword: String(string(trimTrailingZero(lvl.Password[:]))),
	}

	if lvl.PasswordOnly {
		return Object(fields), nil
	}

	idx := 0
	if lvl.RSDir != direction.Nil {
		var err error
		idx, err = direction.ToIndex(lvl.RSDir)
		if err != nil {
			return Value{}, fmt.Errorf("level %d: %w", lvl.Number, err)
		}
	}
	fields[FieldRndSlideDir] = Integer(int64(idx))
	fields[FieldStepping] = Integer(int64(lvl.Stepping))
	fields[FieldRndSeed] = Integer(int64(lvl.Seed))

	var actions []action.Action
	if lvl.Actions != nil {
		actions = lvl.Actions.All()
	}
	// -1: the container has no independent record of the solution's total
	// tick count, so the notation ends exactly where the last action lands.
	moves, err := text.Compress(actions, -1)
	if err != nil {
		return Value{}, fmt.Errorf("level %d: %w", lvl.Number, err)
	}
	fields[FieldMoves] = String(moves)

	return Object(fields), nil
}

// ToContainer builds a container from a document Value tree, reporting
// unknown fields and recoverable per-solution problems through r.
func ToContainer(doc Value, r diag.Reporter) (*container.Container, error) {
	obj, ok := doc.AsObject()
	if !ok {
		return nil, fmt.Errorf("document root is not an object")
	}
	reportUnknown(r, -1, obj, documentFields)

	rulesetVal, _ := doc.Field(FieldRuleset)
	ruleset, err := parseRuleset(rulesetVal)
	if err != nil {
		return nil, err
	}

	levelSet, _ := stringField(doc, FieldLevelSet)

	c := &container.Container{Ruleset: ruleset, SetName: levelSet}

	solutionsVal, ok := doc.Field(FieldSolutions)
	if !ok {
		return c, nil
	}
	items, ok := solutionsVal.AsArray()
	if !ok {
		return nil, fmt.Errorf("%s must be an array", FieldSolutions)
	}

	for i, item := range items {
		lvl, err := levelFromSolution(item, r, i)
		if err != nil {
			diag.Fatalf(r, i, "%v", err)
			continue
		}
		c.Levels = append(c.Levels, *lvl)
	}

	return c, nil
}

func levelFromSolution(v Value, r diag.Reporter, index int) (*container.LevelRecord, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("solution %d is not an object", index)
	}
	reportUnknown(r, index, obj, solutionFields)

	number, _ := intField(v, FieldNumber)
	password, _ := stringField(v, FieldPassword)
	if len(password) != 4 {
		diag.Warningf(r, index, "%w: %q", errs.ErrMissingPassword, password)
	}
	var passwordArr [4]byte
	copy(passwordArr[:], password)

	lvl := &container.LevelRecord{Number: uint16(number), Password: passwordArr}

	movesVal, hasMoves := v.Field(FieldMoves)
	if !hasMoves {
		lvl.PasswordOnly = true
		return lvl, nil
	}

	moves, _ := movesVal.AsString()
	res, err := text.Parse(moves)
	if err != nil {
		return nil, fmt.Errorf("solution %d moves: %w", index, err)
	}
	lvl.Actions = res.Actions

	rsdir, _ := intField(v, FieldRndSlideDir)
	dir, err := direction.FromIndex(int(rsdir))
	if err != nil {
		dir = direction.Nil
	}
	lvl.RSDir = dir

	stepping, _ := intField(v, FieldStepping)
	lvl.Stepping = uint8(stepping)

	seed, _ := intField(v, FieldRndSeed)
	lvl.Seed = uint32(seed)

	return lvl, nil
}

func reportUnknown(r diag.Reporter, level int, obj map[string]Value, known map[string]bool) {
	for _, key := range Object(obj).Keys() {
		if !known[key] {
			diag.Warningf(r, level, "%w: %q", errs.ErrUnknownField, key)
		}
	}
}

func rulesetName(rs format.Ruleset) string {
	if rs == format.RulesetMS {
		return "ms"
	}
	return "lynx"
}

func parseRuleset(v Value) (format.Ruleset, error) {
	if s, ok := v.AsString(); ok {
		switch s {
		case "lynx":
			return format.RulesetLynx, nil
		case "ms":
			return format.RulesetMS, nil
		default:
			return 0, fmt.Errorf("%w: %q", errs.ErrBadRuleset, s)
		}
	}
	if n, ok := v.AsInteger(); ok {
		rs := format.Ruleset(n)
		if !rs.Valid() {
			return 0, fmt.Errorf("%w: %d", errs.ErrBadRuleset, n)
		}
		return rs, nil
	}
	return 0, fmt.Errorf("%w: ruleset field missing or malformed", errs.ErrBadRuleset)
}

func stringField(v Value, key string) (string, bool) {
	f, ok := v.Field(key)
	if !ok {
		return "", false
	}
	return f.AsString()
}

func intField(v Value, key string) (int64, bool) {
	f, ok := v.Field(key)
	if !ok {
		return 0, false
	}
	return f.AsInteger()
}

func trimTrailingZero(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
