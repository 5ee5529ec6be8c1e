package errors

import "errors"

var (
	ErrNotShort           = errors.New("game is not short")
	ErrNotImpartial       = errors.New("game is not impartial")
	ErrInvalidNotation    = errors.New("invalid game notation")
	ErrInvalidBoard       = errors.New("invalid domineering board")
	ErrBoardTooLarge      = errors.New("domineering board is too large")
	ErrInvalidRelabelling = errors.New("invalid relabelling")
	ErrAnalysisNotFound   = errors.New("analysis not found")
	ErrInternal           = errors.New("internal error")
)
