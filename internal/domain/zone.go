package domain

import "fmt"

// Zone es el nivel simbolico de proximidad de un personaje respecto a la escena.
// Son exactamente cuatro valores, sin sinonimos y sensibles a mayusculas.
type Zone string

const (
	ZoneClose   Zone = "close"
	ZoneNear    Zone = "near"
	ZoneFar     Zone = "far"
	ZoneDistant Zone = "distant"
)

// DefaultZone aplica para personajes que nunca registraron posicion.
const DefaultZone = ZoneNear

// ParseZone valida un simbolo de zona recibido en el borde HTTP.
func ParseZone(s string) (Zone, error) {
	switch Zone(s) {
	case ZoneClose, ZoneNear, ZoneFar, ZoneDistant:
		return Zone(s), nil
	}
	return "", fmt.Errorf("unknown zone %q", s)
}

// Valid reporta si la zona es uno de los cuatro valores canonicos.
func (z Zone) Valid() bool {
	_, err := ParseZone(string(z))
	return err == nil
}

// Position es la posicion actual de un personaje: zona mas metadata opaca.
// La metadata no se interpreta; se persiste y se devuelve tal cual.
type Position struct {
	Zone     Zone           `json:"zone"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
