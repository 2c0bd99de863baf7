package inventory

// Estados del reporte de stock bajo, de mayor a menor severidad.
const (
	StatusCritico = "CRITICO"
	StatusUrgente = "URGENTE"
	StatusBajo    = "BAJO"
)

// ClassifyLowStock clasifica un par por debajo del mínimo:
// sin disponible → CRITICO; menos de la mitad del mínimo → URGENTE; el resto → BAJO.
func ClassifyLowStock(available, minStock int) string {
	switch {
	case available <= 0:
		return StatusCritico
	case available*2 < minStock:
		return StatusUrgente
	default:
		return StatusBajo
	}
}

// Deficit unidades que faltan para llegar al mínimo (nunca negativo).
func Deficit(available, minStock int) int {
	if d := minStock - available; d > 0 {
		return d
	}
	return 0
}

// StatusRank orden de severidad para ordenar reportes (0 = más severo).
func StatusRank(status string) int {
	switch status {
	case StatusCritico:
		return 0
	case StatusUrgente:
		return 1
	case StatusBajo:
		return 2
	}
	return 3
}
