package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "result.none", "OK")
	message.SetString(lang, "result.generic_failure", "O comando falhou")
	message.SetString(lang, "result.malformed_command", "Os dados do comando não puderam ser decodificados")
	message.SetString(lang, "result.not_enough_cash", "Dinheiro insuficiente")
	message.SetString(lang, "result.off_map", "Local fora do mapa")
	message.SetString(lang, "result.policy_rejected", "Rejeitado pela política do servidor")
	message.SetString(lang, "result.desync", "Custo executado excedeu a estimativa")
	message.SetString(lang, "result.rail_already_built", "Trilho já construído aqui")
	message.SetString(lang, "result.no_track_to_remove", "Não há trilho para remover aqui")
	message.SetString(lang, "result.signal_program_invalid", "Programa de sinal inválido")
	message.SetString(lang, "result.town_name_taken", "Já existe uma cidade com esse nome")
	message.SetString(lang, "result.town_not_found", "Cidade não encontrada")
	message.SetString(lang, "result.too_close_to_town", "Muito perto de outra cidade")
	message.SetString(lang, "result.name_empty", "O nome não pode ser vazio")
	message.SetString(lang, "result.name_too_long", "Nome longo demais")
	message.SetString(lang, "result.plan_not_found", "Plano não encontrado")
	message.SetString(lang, "result.too_many_plans", "Planos demais")
	message.SetString(lang, "result.vehicle_not_found", "Veículo não encontrado")
	message.SetString(lang, "result.vehicle_in_depot", "O veículo está parado em um depósito")
	message.SetString(lang, "result.company_not_found", "Empresa não encontrada")
	message.SetString(lang, "result.already_paused", "O jogo já está pausado")
	message.SetString(lang, "result.sign_text_empty", "O texto da placa não pode ser vazio")
	message.SetString(lang, "result.track_under_bridge", "Trilho construído sob uma ponte")
}
