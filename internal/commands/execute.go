package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goto   func(GotoArgs) (Result, error)
	Timer  func(TimerArgs) (Result, error)
	Phrase func(PhraseArgs) (Result, error)
	Export func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	case TypeTimer:
		if handlers.Timer == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "timer handler not configured"}
		}
		return handlers.Timer(*cmd.Timer)
	case TypePhrase:
		if handlers.Phrase == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "phrase handler not configured"}
		}
		return handlers.Phrase(*cmd.Phrase)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export handler not configured"}
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
