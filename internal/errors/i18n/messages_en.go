package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "result.none", "OK")
	message.SetString(lang, "result.generic_failure", "The command failed")
	message.SetString(lang, "result.malformed_command", "The command data could not be decoded")
	message.SetString(lang, "result.not_enough_cash", "Not enough cash")
	message.SetString(lang, "result.off_map", "Location is outside the map")
	message.SetString(lang, "result.policy_rejected", "Rejected by server policy")
	message.SetString(lang, "result.desync", "Executed cost exceeded the estimate")
	message.SetString(lang, "result.rail_already_built", "Rail track already built here")
	message.SetString(lang, "result.no_track_to_remove", "There is no track to remove here")
	message.SetString(lang, "result.signal_program_invalid", "Signal program is invalid")
	message.SetString(lang, "result.town_name_taken", "A town with that name already exists")
	message.SetString(lang, "result.town_not_found", "Town not found")
	message.SetString(lang, "result.too_close_to_town", "Too close to another town")
	message.SetString(lang, "result.name_empty", "Name must not be empty")
	message.SetString(lang, "result.name_too_long", "Name is too long")
	message.SetString(lang, "result.plan_not_found", "Plan not found")
	message.SetString(lang, "result.too_many_plans", "Too many plans")
	message.SetString(lang, "result.vehicle_not_found", "Vehicle not found")
	message.SetString(lang, "result.vehicle_in_depot", "Vehicle is stopped in a depot")
	message.SetString(lang, "result.company_not_found", "Company not found")
	message.SetString(lang, "result.already_paused", "The game is already paused")
	message.SetString(lang, "result.sign_text_empty", "Sign text must not be empty")
	message.SetString(lang, "result.track_under_bridge", "Track was laid under a bridge")
}
