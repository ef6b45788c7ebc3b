package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

type Type string

const (
	TypeGoto   Type = "goto"
	TypeTimer  Type = "timer"
	TypePhrase Type = "phrase"
	TypeExport Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GotoArgs holds either an absolute DateKey or a day offset from today.
type GotoArgs struct {
	DateKey string
	Offset  int
}

// Resolve returns the date key the palette should switch to.
func (a GotoArgs) Resolve(today time.Time) string {
	if a.DateKey != "" {
		return a.DateKey
	}
	return model.DateKey(model.StartOfDay(today).AddDate(0, 0, a.Offset))
}

type TimerArgs struct {
	Minutes int
}

type PhraseAction string

const (
	PhraseAdd   PhraseAction = "add"
	PhrasePin   PhraseAction = "pin"
	PhraseUnpin PhraseAction = "unpin"
)

// PhraseArgs carries Text for add and a zero-based Index for pin.
type PhraseArgs struct {
	Action PhraseAction
	Text   string
	Index  int
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Goto   *GotoArgs
	Timer  *TimerArgs
	Phrase *PhraseArgs
	Export *ExportArgs
}

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
	case TypeGoto:
		return parseGoto(input, args)
	case TypeTimer:
		return parseTimer(input, args)
	case TypePhrase:
		return parsePhrase(input, args)
	case TypeExport:
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires today, YYYY-MM-DD, +N or -N"}
	}
	arg := strings.ToLower(args[0])
	switch {
	case arg == "today":
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{}}, nil
	case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid day offset: %s", args[0])}
		}
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Offset: n}}, nil
	default:
		if _, err := model.ParseDateKey(arg); err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date: %s", args[0])}
		}
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{DateKey: arg}}, nil
	}
}

func parseTimer(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "timer requires minutes"}
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil || n <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", args[0])}
	}
	return Command{Type: TypeTimer, Raw: raw, Timer: &TimerArgs{Minutes: n}}, nil
}

func parsePhrase(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "phrase requires add, pin or unpin"}
	}
	switch PhraseAction(strings.ToLower(args[0])) {
	case PhraseAdd:
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "phrase add requires text"}
		}
		return Command{Type: TypePhrase, Raw: raw, Phrase: &PhraseArgs{Action: PhraseAdd, Text: text}}, nil
	case PhrasePin:
		if len(args) != 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "phrase pin requires a number"}
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid phrase number: %s", args[1])}
		}
		return Command{Type: TypePhrase, Raw: raw, Phrase: &PhraseArgs{Action: PhrasePin, Index: n - 1}}, nil
	case PhraseUnpin:
		return Command{Type: TypePhrase, Raw: raw, Phrase: &PhraseArgs{Action: PhraseUnpin, Index: -1}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown phrase action: %s", args[0])}
	}
}
