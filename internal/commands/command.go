package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeTask Type = "task"
	TypeNote Type = "note"
	TypeShow Type = "show"
	TypeTag  Type = "tag"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type TaskArgs struct {
	Text string
}

type NoteArgs struct {
	Content string
}

type ShowArgs struct {
	Screen string
}

type TagArgs struct {
	Tag string
}

type Command struct {
	Type Type
	Raw  string
	Task *TaskArgs
	Note *NoteArgs
	Show *ShowArgs
	Tag  *TagArgs
}

// Parse turns palette input like "task buy stamps" or "show notes" into a
// typed command.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeTask:
		return parseTask(input, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeTag:
		return parseTag(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTask(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires text"}
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Text: text}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires content"}
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Content: content}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a screen"}
	}
	screen := strings.ToLower(args[0])
	switch screen {
	case "drawer", "board", "notes", "settings":
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Screen: screen}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown screen: %s", screen)}
	}
}

func parseTag(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		// Bare "tag" clears the active tag filter.
		return Command{Type: TypeTag, Raw: raw, Tag: &TagArgs{}}, nil
	}
	return Command{Type: TypeTag, Raw: raw, Tag: &TagArgs{Tag: strings.TrimPrefix(args[0], "#")}}, nil
}
