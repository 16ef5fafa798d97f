package www

import (
	"log/slog"
	"net/http"
)

type fact struct {
	Label string
	Value string
}

type factSection struct {
	Title string
	Color string
	Items []string
}

type regionView struct {
	Location     []fact
	LocationTags []string
	Demography   []fact
	Cities       []string
	Climate      []factSection
	Relief       []factSection
	Crops        []string
	CropsNote    string
	Attractions  []string
	TourismNote  string
	Raising      []string
	Lowering     []string
	Monitoring   []factSection
}

// junin is static reference content about the department the
// predictions are made for.
var junin = regionView{
	Location: []fact{
		{"Región", "Sierra Central del Perú"},
		{"Coordenadas", "11°09′S 75°59′O"},
		{"Superficie", "44,197 km²"},
		{"Capital", "Huancayo"},
		{"Altitud", "3,200 - 5,730 msnm"},
	},
	LocationTags: []string{"Sierra Central", "Región Andina", "Zona Tropical"},
	Demography: []fact{
		{"Población", "~1,350,000 habitantes"},
		{"Densidad", "30.5 hab/km²"},
		{"Provincias", "9 provincias"},
		{"Distritos", "123 distritos"},
		{"Idiomas", "Español, Quechua"},
	},
	Cities: []string{"Huancayo", "Tarma", "La Oroya", "Jauja"},
	Climate: []factSection{
		{Title: "Temperatura", Color: "orange", Items: []string{
			"Promedio anual: 11°C - 16°C",
			"Máxima: 20°C - 24°C (día)",
			"Mínima: -3°C - 5°C (noche)",
			"Variación diurna: Muy pronunciada",
		}},
		{Title: "Precipitaciones", Color: "blue", Items: []string{
			"Anual: 600 - 1,200 mm",
			"Época húmeda: Dic - Mar",
			"Época seca: May - Sep",
			"Distribución: Irregular",
		}},
		{Title: "Radiación Solar", Color: "purple", Items: []string{
			"Intensidad: Alta (altitud)",
			"Horas sol/día: 6 - 8 horas",
			"UV máximo: 800 - 1,200 W/m²",
			"Variación estacional: Moderada",
		}},
	},
	Relief: []factSection{
		{Title: "Formas de Relieve", Items: []string{
			"Valle del Mantaro: Principal valle interandino",
			"Cordillera Occidental: Límite oeste",
			"Cordillera Oriental: Límite este",
			"Mesetas: Altiplanos de Bombón y Junín",
			"Cañones: Profundos valles fluviales",
			"Nevados: Huaytapallana, Pariacaca",
		}},
		{Title: "Pisos Altitudinales", Items: []string{
			"Yunga (1,000-2,300m): Clima cálido",
			"Quechua (2,300-3,500m): Clima templado",
			"Suni (3,500-4,000m): Clima frío",
			"Puna (4,000-4,800m): Clima muy frío",
			"Janka (>4,800m): Clima glacial",
		}},
	},
	Crops: []string{
		"Papa (variedades nativas)",
		"Maíz (amiláceo y choclo)",
		"Quinua y kiwicha",
		"Habas y arvejas",
		"Cebada y trigo",
		"Hortalizas (zanahoria, lechuga)",
	},
	CropsNote: "La alta radiación UV afecta el crecimiento de cultivos y requiere estrategias de protección para agricultores.",
	Attractions: []string{
		"Valle del Mantaro",
		"Nevado de Huaytapallana",
		"Santuario de Wariwillka",
		"Convento de Santa Rosa de Ocopa",
		"Laguna de Paca",
		"Reserva Nacional de Junín",
	},
	TourismNote: "Los turistas deben usar protección solar alta debido a la intensa radiación en altitud.",
	Raising: []string{
		"Altitud elevada: Menor densidad atmosférica",
		"Aire seco: Menor absorción de radiación",
		"Cielos despejados: Época seca (mayo-septiembre)",
		"Reflexión de nieve: En nevados y glaciares",
		"Latitud tropical: Mayor incidencia solar",
	},
	Lowering: []string{
		"Nubosidad: Época húmeda (diciembre-marzo)",
		"Precipitaciones: Absorción por vapor de agua",
		"Topografía: Sombras de montañas",
		"Contaminación: Partículas en suspensión",
		"Neblina matinal: Común en valles",
	},
	Monitoring: []factSection{
		{Title: "Agricultura", Color: "green", Items: []string{
			"Planificación de siembras",
			"Protección de cultivos",
			"Optimización de riego",
			"Prevención de estrés térmico",
		}},
		{Title: "Salud Pública", Color: "blue", Items: []string{
			"Prevención de cáncer de piel",
			"Alertas de radiación UV",
			"Educación preventiva",
			"Protección laboral",
		}},
		{Title: "Energía Solar", Color: "purple", Items: []string{
			"Potencial fotovoltaico",
			"Diseño de sistemas",
			"Eficiencia energética",
			"Planificación urbana",
		}},
	},
}

func NewRegionHandler(logger *slog.Logger, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		render(w, logger, tm, "region.html", http.StatusOK, junin)
	}
}
