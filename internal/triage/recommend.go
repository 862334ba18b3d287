// internal/triage/recommend.go
package triage

// recommendations is a fixed lookup keyed by risk level. Every entry is
// non-empty: there is no "no recommendation" state, a decision always tells
// the user what to do next.
var recommendations = map[RiskLevel][]string{
	RiskEmergency: {
		"Llama a los servicios de emergencia ahora mismo.",
		"No esperes a que los síntomas mejoren.",
		"Si es posible, pide que alguien te acompañe.",
	},
	RiskHigh: {
		"Busca atención médica hoy mismo.",
		"Evita comer o tomar medicamentos sin indicación médica.",
		"Si los síntomas empeoran, acude a urgencias.",
	},
	RiskMedium: {
		"Agenda una consulta médica en los próximos días.",
		"Mantén una dieta blanda y buena hidratación.",
		"Registra los cambios en tus síntomas.",
	},
	RiskLow: {
		"Observa la evolución de tus síntomas.",
		"Mantén hábitos de alimentación e hidratación saludables.",
		"Consulta a un médico si los síntomas persisten o empeoran.",
	},
}

// Recommend returns the action list for a risk level. Unknown levels fall
// back to the low-risk guidance so the engine can always answer.
func Recommend(level RiskLevel) []string {
	if actions, ok := recommendations[level]; ok {
		out := make([]string, len(actions))
		copy(out, actions)
		return out
	}
	out := make([]string, len(recommendations[RiskLow]))
	copy(out, recommendations[RiskLow])
	return out
}
