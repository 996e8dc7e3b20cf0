package command

// Money is an amount of game currency. Costs are signed: income from
// removal refunds is negative.
type Money int64

// TileIndex addresses one map tile.
type TileIndex uint32

// InvalidTile marks the absence of a tile reference.
const InvalidTile TileIndex = 0xFFFFFFFF

// ClientID identifies a connected network client.
type ClientID uint32

// PlanID identifies a drawing plan.
type PlanID uint16

// TownID identifies a town.
type TownID uint16

// VehicleID identifies a vehicle.
type VehicleID uint32

// CompanyID identifies a company.
type CompanyID uint8

// ExpenseType is the ledger category a cost is booked under.
type ExpenseType uint8

const (
	ExpenseConstruction ExpenseType = iota
	ExpenseNewVehicles
	ExpenseTrainRunning
	ExpenseProperty
	ExpenseLoanInterest
	ExpenseOther

	// ExpenseInvalid marks a cost that has no ledger category yet.
	ExpenseInvalid ExpenseType = 0xFF
)

// DoFlag controls a single handler invocation.
type DoFlag uint8

const (
	// Execute applies the mutation. Without it the call is a dry run that
	// must only compute cost and validity.
	Execute DoFlag = 1 << iota
)

// CmdFlag describes static properties of a command kind.
type CmdFlag uint16

const (
	// FlagServer restricts the command to the server itself.
	FlagServer CmdFlag = 1 << iota
	// FlagSpectator allows spectators to issue the command.
	FlagSpectator
	// FlagOffline allows the command while no game is in progress.
	FlagOffline
	// FlagNoEstimate skips the dry-run phase; the command cannot be costed
	// without being applied.
	FlagNoEstimate
	// FlagClientID marks payloads that carry the sender's client id, to be
	// stamped by the server before dispatch.
	FlagClientID
)

// Category groups commands for logging and rate limiting.
type Category uint8

const (
	CategoryConstruction Category = iota
	CategoryVehicle
	CategoryMoney
	CategoryAdmin
	CategoryCheat
	CategoryOther
)
