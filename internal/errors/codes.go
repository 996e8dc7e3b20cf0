// Package errors defines the machine-readable result codes carried inside
// command outcomes, with i18n rendering and gRPC status mapping.
//
// Codes are numeric because they travel on the wire inside command frames;
// the i18n subpackage maps them to human-readable messages per locale.
package errors

import "google.golang.org/grpc/codes"

// Code is a compact, wire-stable result code. Zero means "no message".
type Code uint16

const (
	// CodeNone marks the absence of a message.
	CodeNone Code = 0

	// Generic failures
	CodeGenericFailure   Code = 1
	CodeMalformedCommand Code = 2
	CodeNotEnoughCash    Code = 3
	CodeOffMap           Code = 4
	CodePolicyRejected   Code = 5
	CodeDesync           Code = 6

	// Rail errors
	CodeRailAlreadyBuilt     Code = 10
	CodeNoTrackToRemove      Code = 11
	CodeSignalProgramInvalid Code = 12

	// Town errors
	CodeTownNameTaken  Code = 20
	CodeTownNotFound   Code = 21
	CodeTooCloseToTown Code = 22

	// Naming errors
	CodeNameEmpty   Code = 30
	CodeNameTooLong Code = 31

	// Plan errors
	CodePlanNotFound Code = 40
	CodeTooManyPlans Code = 41

	// Vehicle errors
	CodeVehicleNotFound Code = 50
	CodeVehicleInDepot  Code = 51

	// Company errors
	CodeCompanyNotFound Code = 60

	// Pause / admin
	CodeAlreadyPaused Code = 70

	// Sign errors
	CodeSignTextEmpty Code = 80

	// Warnings carried by successful commands
	CodeTrackUnderBridge Code = 90
)

// Key returns the i18n catalog key for the code. Unknown codes fall back to
// the generic failure key so rendering never yields an empty message.
func (c Code) Key() string {
	if key, ok := messageKeys[c]; ok {
		return key
	}
	return messageKeys[CodeGenericFailure]
}

var messageKeys = map[Code]string{
	CodeNone:                 "result.none",
	CodeGenericFailure:       "result.generic_failure",
	CodeMalformedCommand:     "result.malformed_command",
	CodeNotEnoughCash:        "result.not_enough_cash",
	CodeOffMap:               "result.off_map",
	CodePolicyRejected:       "result.policy_rejected",
	CodeDesync:               "result.desync",
	CodeRailAlreadyBuilt:     "result.rail_already_built",
	CodeNoTrackToRemove:      "result.no_track_to_remove",
	CodeSignalProgramInvalid: "result.signal_program_invalid",
	CodeTownNameTaken:        "result.town_name_taken",
	CodeTownNotFound:         "result.town_not_found",
	CodeTooCloseToTown:       "result.too_close_to_town",
	CodeNameEmpty:            "result.name_empty",
	CodeNameTooLong:          "result.name_too_long",
	CodePlanNotFound:         "result.plan_not_found",
	CodeTooManyPlans:         "result.too_many_plans",
	CodeVehicleNotFound:      "result.vehicle_not_found",
	CodeVehicleInDepot:       "result.vehicle_in_depot",
	CodeCompanyNotFound:      "result.company_not_found",
	CodeAlreadyPaused:        "result.already_paused",
	CodeSignTextEmpty:        "result.sign_text_empty",
	CodeTrackUnderBridge:     "result.track_under_bridge",
}

// GRPCCode maps result codes to gRPC status codes for transport errors.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeMalformedCommand,
		CodeNameEmpty,
		CodeNameTooLong,
		CodeSignTextEmpty,
		CodeSignalProgramInvalid,
		CodeOffMap:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeNotEnoughCash,
		CodeRailAlreadyBuilt,
		CodeNoTrackToRemove,
		CodeTownNameTaken,
		CodeTooCloseToTown,
		CodeTooManyPlans,
		CodeVehicleInDepot,
		CodeAlreadyPaused,
		CodeDesync:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeTownNotFound,
		CodePlanNotFound,
		CodeVehicleNotFound,
		CodeCompanyNotFound:
		return codes.NotFound

	// PermissionDenied - rejected by server policy
	case CodePolicyRejected:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
