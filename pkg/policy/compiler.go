package policy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CompileError reports a fatal failure to compile a policy DSL file. Line
// is 1-based and zero when the error is not tied to a specific line (e.g.
// a missing DEFAULT DENY).
type CompileError struct {
	Line   int
	Reason string
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("policy: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("policy: %s", e.Reason)
}

// Compile reads a policy DSL program from r and returns its compiled
// bytecode image. Compilation fails fatally — returning an error and no
// partial bytecode — if any ACT immediate violates the physical-bound
// table or if the program never reaches DEFAULT DENY.
func Compile(r io.Reader) ([]byte, error) {
	var bc []byte
	sawDefault := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		switch tokens[0] {
		case "IF":
			id, conf, err := parseIfStatement(tokens)
			if err != nil {
				return nil, &CompileError{Line: lineNo, Reason: err.Error()}
			}
			bc = append(bc, OpIf)
			bc = appendU16(bc, id)
			bc = appendU16(bc, conf)

		case "REQUIRE_PREV":
			if len(tokens) != 2 {
				return nil, &CompileError{Line: lineNo, Reason: "REQUIRE_PREV requires exactly one argument"}
			}
			actID, err := parseU8(tokens[1])
			if err != nil {
				return nil, &CompileError{Line: lineNo, Reason: fmt.Sprintf("invalid REQUIRE_PREV act_id: %v", err)}
			}
			bc = append(bc, OpRequirePrev, actID)

		case "ACT":
			if len(tokens) != 3 {
				return nil, &CompileError{Line: lineNo, Reason: "ACT requires exactly two arguments"}
			}
			actID, err := parseU8(tokens[1])
			if err != nil {
				return nil, &CompileError{Line: lineNo, Reason: fmt.Sprintf("invalid ACT act_id: %v", err)}
			}
			param, err := parseI16(tokens[2])
			if err != nil {
				return nil, &CompileError{Line: lineNo, Reason: fmt.Sprintf("invalid ACT param: %v", err)}
			}
			if !InBounds(actID, param) {
				return nil, &CompileError{
					Line:   lineNo,
					Reason: fmt.Sprintf("actuator %d param %d out of physical bounds %+v", actID, param, Bounds[actID]),
				}
			}
			bc = append(bc, OpSet, actID)
			bc = appendI16(bc, param)

		case "DEFAULT":
			if len(tokens) != 2 || tokens[1] != "DENY" {
				return nil, &CompileError{Line: lineNo, Reason: "expected DEFAULT DENY"}
			}
			bc = append(bc, OpDeny)
			sawDefault = true

		default:
			return nil, &CompileError{Line: lineNo, Reason: fmt.Sprintf("unrecognized statement %q", tokens[0])}
		}

		if sawDefault {
			break // any further lines are ignored, per spec
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawDefault {
		return nil, &CompileError{Reason: "policy must end with DEFAULT DENY"}
	}

	bc = append(bc, OpEnd)
	return bc, nil
}

// parseIfStatement parses "IF intent == <id> CONF >= <c>": it requires
// exactly seven tokens, checks each keyword at its position, and reads
// the id and threshold from tokens 3 and 6.
func parseIfStatement(tokens []string) (id, conf uint16, err error) {
	if len(tokens) != 7 ||
		tokens[1] != "intent" || tokens[2] != "==" ||
		tokens[4] != "CONF" || tokens[5] != ">=" {
		return 0, 0, fmt.Errorf("expected IF intent == <id> CONF >= <c>, got %q", strings.Join(tokens, " "))
	}
	idVal, err := parseU16(tokens[3])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid intent id: %w", err)
	}
	confVal, err := parseU16(tokens[6])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid confidence threshold: %w", err)
	}
	return idVal, confVal, nil
}

func parseU8(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseU16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func parseI16(s string) (int16, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

func appendU16(bc []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(bc, b[:]...)
}

func appendI16(bc []byte, v int16) []byte {
	return appendU16(bc, uint16(v))
}
