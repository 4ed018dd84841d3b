package kpi

// Field describes one KPI counter in the canonical schema.
type Field struct {
	Key   string
	Label string
	Group string
}

// Schema is the single ordered list of KPI fields shared by the resolver,
// the save path, the entry forms and the dashboard. Every stored record and
// every resolved result is fully populated over these keys.
var Schema = []Field{
	{Key: "conversaciones", Label: "Conversaciones iniciadas", Group: "actividad"},
	{Key: "contactos_nuevos", Label: "Contactos nuevos", Group: "actividad"},
	{Key: "llamadas", Label: "Llamadas", Group: "actividad"},
	{Key: "reuniones", Label: "Reuniones", Group: "actividad"},
	{Key: "visitas", Label: "Visitas", Group: "actividad"},
	{Key: "valoraciones", Label: "Valoraciones", Group: "captacion"},
	{Key: "captaciones", Label: "Captaciones", Group: "captacion"},
	{Key: "encargos_firmados", Label: "Encargos firmados", Group: "captacion"},
	{Key: "propuestas", Label: "Propuestas presentadas", Group: "captacion"},
	{Key: "ventas", Label: "Ventas cerradas", Group: "cierre"},
	{Key: "alquileres", Label: "Alquileres cerrados", Group: "cierre"},
	{Key: "referidos", Label: "Referidos", Group: "cierre"},
	{Key: "facturacion_venta", Label: "Facturación venta", Group: "facturacion"},
	{Key: "facturacion_alquiler", Label: "Facturación alquiler", Group: "facturacion"},
	{Key: "honorarios_otros", Label: "Otros honorarios", Group: "facturacion"},
}

// Keys returns the schema keys in canonical order.
func Keys() []string {
	keys := make([]string, len(Schema))
	for i, f := range Schema {
		keys[i] = f.Key
	}
	return keys
}

// ValidKey reports whether key belongs to the schema.
func ValidKey(key string) bool {
	for _, f := range Schema {
		if f.Key == key {
			return true
		}
	}
	return false
}

// ZeroValues returns a fully populated value map with every field at 0.
func ZeroValues() map[string]float64 {
	values := make(map[string]float64, len(Schema))
	for _, f := range Schema {
		values[f.Key] = 0
	}
	return values
}

// Normalize returns a copy of values restricted and padded to the schema:
// unknown keys are dropped, missing keys default to 0.
func Normalize(values map[string]float64) map[string]float64 {
	out := ZeroValues()
	for _, f := range Schema {
		if v, ok := values[f.Key]; ok {
			out[f.Key] = v
		}
	}
	return out
}
