package command

import (
	"strconv"

	apperrors "github.com/louisbranch/signalyard/internal/errors"
	"github.com/louisbranch/signalyard/internal/errors/i18n"
)

// textRefStackSize is the number of 32-bit registers available to scripted
// message substitution.
const textRefStackSize = 16

// costAux holds the rarely-used parts of a command outcome. It is allocated
// lazily so the common success path stays a few machine words.
type costAux struct {
	extraMessage apperrors.Code
	tile         TileIndex
	resultData   uint32
	textRefStack [textRefStackSize]uint32
	textRefCount uint8
	textRefGRF   uint32
}

func newCostAux() *costAux {
	return &costAux{tile: InvalidTile}
}

// CommandCost is the outcome of one command invocation: success or failure,
// the running monetary cost booked under a single expense category, a result
// message, and optional auxiliary data.
//
// An absent aux block is equivalent to one holding all defaults; getters on
// it return those defaults rather than failing.
type CommandCost struct {
	cost    Money
	expense ExpenseType
	success bool
	message apperrors.Code
	aux     *costAux
}

// NewCost returns a zero-cost success tracking the given expense category.
func NewCost(expense ExpenseType) CommandCost {
	return CommandCost{expense: expense, success: true}
}

// NewError returns a failure carrying the given message.
func NewError(message apperrors.Code) CommandCost {
	if message == apperrors.CodeNone {
		message = apperrors.CodeGenericFailure
	}
	return CommandCost{expense: ExpenseInvalid, message: message}
}

// SuccessWithMessage returns a success that still carries a message for the
// UI layer to surface as a warning.
func SuccessWithMessage(message apperrors.Code) CommandCost {
	return CommandCost{expense: ExpenseInvalid, success: true, message: message}
}

// Succeeded reports whether the command may be (or was) applied.
func (c CommandCost) Succeeded() bool {
	return c.success
}

// Failed is the complement of Succeeded.
func (c CommandCost) Failed() bool {
	return !c.success
}

// Cost returns the accumulated monetary cost.
func (c CommandCost) Cost() Money {
	return c.cost
}

// Expense returns the ledger category the cost is booked under.
func (c CommandCost) Expense() ExpenseType {
	return c.expense
}

// Message returns the attached result message, CodeNone when there is none.
func (c CommandCost) Message() apperrors.Code {
	return c.message
}

// AddCost adds an amount to the running total.
func (c *CommandCost) AddCost(amount Money) {
	c.cost += amount
}

// Add folds another outcome into this one: the cost is summed and a failure
// is contagious. Both outcomes must book under the same expense category;
// the caller is responsible for not mixing them.
func (c *CommandCost) Add(other CommandCost) {
	c.cost += other.cost
	if other.Failed() {
		c.success = false
		c.message = other.message
	}
}

// MultiplyCost scales the running total.
func (c *CommandCost) MultiplyCost(factor int) {
	c.cost *= Money(factor)
}

// MakeError converts a cost-in-progress into a failure with the given
// message, discarding any attached secondary message.
func (c *CommandCost) MakeError(message apperrors.Code) {
	c.success = false
	c.message = message
	if c.aux != nil {
		c.aux.extraMessage = apperrors.CodeNone
	}
}

// UnwrapSuccessWithMessage downgrades a success-with-message into a
// failure-shaped value carrying that message, for callers that must treat
// the message as informative but non-fatal. Other values pass through.
func (c CommandCost) UnwrapSuccessWithMessage() CommandCost {
	if c.success && c.message != apperrors.CodeNone {
		return NewError(c.message)
	}
	return c
}

func (c *CommandCost) ensureAux() *costAux {
	if c.aux == nil {
		c.aux = newCostAux()
	}
	return c.aux
}

// SetExtraMessage attaches a secondary message shown alongside the primary.
func (c *CommandCost) SetExtraMessage(message apperrors.Code) {
	c.ensureAux().extraMessage = message
}

// ExtraMessage returns the secondary message, CodeNone when absent.
func (c CommandCost) ExtraMessage() apperrors.Code {
	if c.aux == nil {
		return apperrors.CodeNone
	}
	return c.aux.extraMessage
}

// SetTile records the tile the outcome refers to.
func (c *CommandCost) SetTile(tile TileIndex) {
	c.ensureAux().tile = tile
}

// Tile returns the recorded tile, InvalidTile when absent.
func (c CommandCost) Tile() TileIndex {
	if c.aux == nil {
		return InvalidTile
	}
	return c.aux.tile
}

// SetResultData attaches an opaque 32-bit result for the caller, typically
// the id of a newly created object.
func (c *CommandCost) SetResultData(data uint32) {
	c.ensureAux().resultData = data
}

// ResultData returns the attached result, zero when absent.
func (c CommandCost) ResultData() uint32 {
	if c.aux == nil {
		return 0
	}
	return c.aux.resultData
}

// UseTextRefStack attaches script substitution registers from the given
// content source to the outcome's message.
func (c *CommandCost) UseTextRefStack(grfID uint32, stack [textRefStackSize]uint32, count uint8) {
	if count > textRefStackSize {
		count = textRefStackSize
	}
	aux := c.ensureAux()
	aux.textRefGRF = grfID
	aux.textRefStack = stack
	aux.textRefCount = count
}

// TextRefStack returns the substitution registers, source id, and register
// count; absent aux yields an empty stack.
func (c CommandCost) TextRefStack() (grfID uint32, stack [textRefStackSize]uint32, count uint8) {
	if c.aux == nil {
		return 0, [textRefStackSize]uint32{}, 0
	}
	return c.aux.textRefGRF, c.aux.textRefStack, c.aux.textRefCount
}

// SummaryMessage renders a one-line human-readable description of the
// outcome for logs and admin tooling. A non-zero override replaces the
// attached message.
func (c CommandCost) SummaryMessage(locale string, override apperrors.Code) string {
	message := c.message
	if override != apperrors.CodeNone {
		message = override
	}
	if c.success {
		s := "success: cost " + strconv.FormatInt(int64(c.cost), 10)
		if message != apperrors.CodeNone {
			s += " (" + i18n.Printer(locale).Sprintf(message.Key()) + ")"
		}
		return s
	}
	if message == apperrors.CodeNone {
		message = apperrors.CodeGenericFailure
	}
	return "failed: " + i18n.Printer(locale).Sprintf(message.Key())
}
