package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a command was rejected.
type ErrorKind int

const (
	KindNone ErrorKind = iota

	// Resource violations
	KindInsufficientMana

	// State violations
	KindHeroPowerUsed
	KindCannotAttack
	KindWeaponEquipped
	KindNoWeapon
	KindNotInHand
	KindTurnEnded
	KindBattlefieldFull
	KindUnplayable
	KindUnknownCommand

	// Target violations
	KindTargetRequired
	KindInvalidTarget
	KindTauntBlocks

	// Terminal violations
	KindGameOver
)

// Category groups error kinds.
type Category int

const (
	CategoryNone Category = iota
	CategoryResource
	CategoryState
	CategoryTarget
	CategoryTerminal
)

func (c Category) String() string {
	switch c {
	case CategoryResource:
		return "resource"
	case CategoryState:
		return "state"
	case CategoryTarget:
		return "target"
	case CategoryTerminal:
		return "terminal"
	default:
		return "none"
	}
}

// Category returns the violation category of the kind.
func (k ErrorKind) Category() Category {
	switch k {
	case KindNone:
		return CategoryNone
	case KindInsufficientMana:
		return CategoryResource
	case KindTargetRequired, KindInvalidTarget, KindTauntBlocks:
		return CategoryTarget
	case KindGameOver:
		return CategoryTerminal
	default:
		return CategoryState
	}
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "none"
}

var (
	ErrInsufficientMana = errors.New("insufficient mana")
	ErrHeroPowerUsed    = errors.New("hero power already used")
	ErrCannotAttack     = errors.New("cannot attack")
	ErrWeaponEquipped   = errors.New("weapon already equipped")
	ErrNoWeapon         = errors.New("no weapon equipped")
	ErrNotInHand        = errors.New("card not in hand")
	ErrTurnEnded        = errors.New("turn has ended")
	ErrBattlefieldFull  = errors.New("battlefield is full")
	ErrUnplayable       = errors.New("card cannot be played")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrTargetRequired   = errors.New("target required")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrTauntBlocks      = errors.New("taunt minion must be attacked first")
	ErrGameOver         = errors.New("game is over")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInsufficientMana:
		return ErrInsufficientMana
	case KindHeroPowerUsed:
		return ErrHeroPowerUsed
	case KindCannotAttack:
		return ErrCannotAttack
	case KindWeaponEquipped:
		return ErrWeaponEquipped
	case KindNoWeapon:
		return ErrNoWeapon
	case KindNotInHand:
		return ErrNotInHand
	case KindTurnEnded:
		return ErrTurnEnded
	case KindBattlefieldFull:
		return ErrBattlefieldFull
	case KindUnplayable:
		return ErrUnplayable
	case KindUnknownCommand:
		return ErrUnknownCommand
	case KindTargetRequired:
		return ErrTargetRequired
	case KindInvalidTarget:
		return ErrInvalidTarget
	case KindTauntBlocks:
		return ErrTauntBlocks
	case KindGameOver:
		return ErrGameOver
	}
	return nil
}

// RuleError is the error form of a failed Result.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error for the kind so callers can use errors.Is.
func (e *RuleError) Unwrap() error {
	return e.Kind.sentinel()
}

// Result is the outcome of an engine command.
// Error carries a stable human-readable message ("Insufficient mana...", "...already used...").
type Result struct {
	Success bool      `json:"success"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Err returns nil for successful results and a *RuleError otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &RuleError{Kind: r.Kind, Message: r.Error}
}

func succeed(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func reject(kind ErrorKind, format string, args ...any) Result {
	return Result{Kind: kind, Error: fmt.Sprintf(format, args...)}
}
