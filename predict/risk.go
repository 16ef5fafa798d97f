package predict

type RiskLevel struct {
	Level           string   `json:"nivel"`
	Color           string   `json:"color"`
	Recommendations []string `json:"recomendaciones"`
}

var (
	riskLow = RiskLevel{
		Level: "Bajo",
		Color: "green",
		Recommendations: []string{
			"Condiciones seguras para actividades al aire libre",
			"No se requiere protección especial",
			"Ideal para actividades agrícolas y turísticas",
		},
	}
	riskModerate = RiskLevel{
		Level: "Moderado",
		Color: "yellow",
		Recommendations: []string{
			"Usar protector solar SPF 30+",
			"Usar sombrero y gafas de sol",
			"Evitar exposición prolongada entre 10am-4pm",
		},
	}
	riskHigh = RiskLevel{
		Level: "Alto",
		Color: "orange",
		Recommendations: []string{
			"Protección solar obligatoria",
			"Buscar sombra durante las horas pico",
			"Usar ropa protectora de manga larga",
			"Aplicar protector solar cada 2 horas",
		},
	}
	riskVeryHigh = RiskLevel{
		Level: "Muy Alto",
		Color: "red",
		Recommendations: []string{
			"¡EXTREMA PRECAUCIÓN!",
			"Evitar actividades al aire libre entre 10am-4pm",
			"Protección solar máxima obligatoria",
			"Mantenerse en interiores si es posible",
			"Riesgo alto de quemaduras solares",
		},
	}
)

// Risk classifies the maximum UV index of a day.
func Risk(uvMax float64) RiskLevel {
	switch {
	case uvMax < 3:
		return riskLow
	case uvMax < 6:
		return riskModerate
	case uvMax < 8:
		return riskHigh
	default:
		return riskVeryHigh
	}
}
