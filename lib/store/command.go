package store

import (
	"fmt"
	"strings"
)

// CommandType defines the possible operations on the store.
type CommandType uint8

const (
	CommandTGet    CommandType = iota // Read the value of an entry.
	CommandTSet                       // Insert or update an entry.
	CommandTRemove                    // Remove an entry.
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTGet:
		return "get"
	case CommandTSet:
		return "set"
	case CommandTRemove:
		return "rm"
	default:
		return fmt.Sprintf("unknown(%d)", ct)
	}
}

// Command represents a single operation on the store (and, for mutations, a
// single record in the write-ahead log).
type Command struct {
	Type  CommandType
	Key   string
	Value string // only meaningful for CommandTSet
}

// Convenience constructors used by the CLI and the tests.

func NewGetCommand(key string) Command {
	return Command{Type: CommandTGet, Key: key}
}

func NewSetCommand(key, value string) Command {
	return Command{Type: CommandTSet, Key: key, Value: value}
}

func NewRemoveCommand(key string) Command {
	return Command{Type: CommandTRemove, Key: key}
}

// --------------------------------------------------------------------------
// Line Codec
// --------------------------------------------------------------------------

// The on-disk record format is a single line of single-space-separated
// tokens, mirroring the CLI input format:
//
//	get <key>
//	set <key> <value>
//	rm <key>
//
// Because tokens are split on whitespace, keys and values must not contain
// whitespace themselves. This is a limitation of the record format, not a
// general store constraint.

// Encode serializes a command into its record representation (without the
// trailing newline, which the log appends).
func (cmd Command) Encode() string {
	switch cmd.Type {
	case CommandTSet:
		return fmt.Sprintf("%s %s %s", cmd.Type, cmd.Key, cmd.Value)
	default:
		return fmt.Sprintf("%s %s", cmd.Type, cmd.Key)
	}
}

// Decode parses a single record line back into a command. Extra trailing
// tokens beyond what the command needs are accepted and ignored; this
// matches the lax behavior of the original record format.
func Decode(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, NewError(RetCValidation, "missing command")
	}

	switch tokens[0] {
	case "get":
		if len(tokens) < 2 {
			return Command{}, NewError(RetCValidation, "key not supplied: get")
		}
		return NewGetCommand(tokens[1]), nil
	case "set":
		if len(tokens) < 2 {
			return Command{}, NewError(RetCValidation, "key not supplied: set")
		}
		if len(tokens) < 3 {
			return Command{}, NewError(RetCValidation, "value not supplied: set")
		}
		return NewSetCommand(tokens[1], tokens[2]), nil
	case "rm":
		if len(tokens) < 2 {
			return Command{}, NewError(RetCValidation, "key not supplied: rm")
		}
		return NewRemoveCommand(tokens[1]), nil
	default:
		return Command{}, NewError(RetCValidation, fmt.Sprintf("invalid command: %s", tokens[0]))
	}
}
